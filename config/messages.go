package config

// Messages is the user-facing text of one language.
type Messages struct {
	Title        string
	TermReady    string
	Registers    string
	SaveMsg      string
	RunStart     string
	RunEnd       string
	ConvHeader   string
	FileError    string
	NotFoundTmpl string // formatted with the command name
}

var catalogs = map[string]Messages{
	"en": {
		Title:        "AsmDone IDE",
		TermReady:    "Terminal ready.",
		Registers:    "CPU REGISTERS",
		SaveMsg:      "Saved: .ad and .asm exported",
		RunStart:     "--- RUNNING CODE ---",
		RunEnd:       "--- FINISHED ---",
		ConvHeader:   "; AUTOMATIC CONVERSION FROM AD TO ASM",
		FileError:    "File Error",
		NotFoundTmpl: "bash: %s: command not found",
	},
	"ru": {
		Title:        "AsmDone IDE",
		TermReady:    "Терминал готов.",
		Registers:    "РЕГИСТРЫ CPU",
		SaveMsg:      "Сохранено: .ad и .asm",
		RunStart:     "--- ЗАПУСК КОДА ---",
		RunEnd:       "--- ВЫПОЛНЕНО ---",
		ConvHeader:   "; АВТОМАТИЧЕСКАЯ КОНВЕРТАЦИЯ ИЗ AD В ASM",
		FileError:    "Ошибка файла",
		NotFoundTmpl: "bash: %s: command not found",
	},
}

// Languages lists the supported language codes.
func Languages() []string {
	return []string{"en", "ru"}
}
