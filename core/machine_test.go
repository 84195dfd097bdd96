package core

import (
	"errors"
	"fmt"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func run(src string, resolver LibraryResolver, maxSteps int) Result {
	return Load("", src, resolver, maxSteps).Run()
}

func reg(r Result, name string) int64 {
	v, ok := r.Registers.Value(name)
	Expect(ok).To(BeTrue(), "register %s not in snapshot", name)
	return v
}

func linesContaining(log []string, substr string) []string {
	var out []string
	for _, l := range log {
		if strings.Contains(l, substr) {
			out = append(out, l)
		}
	}
	return out
}

var _ = Describe("Machine", func() {
	Context("concrete scenarios", func() {
		It("adds and shows", func() {
			r := run("set a1 5\nadd a1 3\nshow a1", nil, 0)

			Expect(r.Status).To(Equal(HaltedNormal))
			Expect(reg(r, "a1")).To(Equal(int64(8)))
			Expect(linesContaining(r.Log, "a1 = ")).To(Equal([]string{"OUT: a1 = 8"}))
			Expect(r.Steps).To(Equal(3))
			Expect(r.Fault).NotTo(HaveOccurred())
		})

		It("loops until a check fails", func() {
			r := run("(loop)\nadd a1 1\ncheck a1 < 3 then > (loop)\nshow a1", nil, 0)

			Expect(r.Status).To(Equal(HaltedNormal))
			Expect(reg(r, "a1")).To(Equal(int64(3)))
			Expect(linesContaining(r.Log, "a1 = ")).To(Equal([]string{"OUT: a1 = 3"}))
		})

		It("faults on a jump to a missing label", func() {
			r := run("> (missing)", nil, 0)

			Expect(r.Status).To(Equal(HaltedError))
			Expect(r.PC).To(Equal(0))
			Expect(r.Fault).To(MatchError(ErrUndefinedLabel))

			var fault *RuntimeFault
			Expect(errors.As(r.Fault, &fault)).To(BeTrue())
			Expect(fault.PC).To(Equal(0))
			Expect(linesContaining(r.Log, "missing")).To(HaveLen(1))
			Expect(linesContaining(r.Log, "instruction 0")).To(HaveLen(1))
		})

		It("runs past an unresolvable import", func() {
			r := run("import nolib\nshow a1", MapResolver{}, 0)

			Expect(r.Status).To(Equal(HaltedNormal))
			Expect(reg(r, "a1")).To(Equal(int64(0)))
			Expect(r.Warnings).To(HaveLen(1))
			Expect(linesContaining(r.Log, "library not found: nolib")).To(HaveLen(1))
			Expect(linesContaining(r.Log, "a1 = 0")).To(HaveLen(1))
		})
	})

	Context("properties", func() {
		It("reads back every set value", func() {
			for _, v := range []int64{0, 1, -1, 42, -9000, 1 << 40, -(1 << 62)} {
				for _, r := range Registers() {
					res := run(fmt.Sprintf("set %s %d", r, v), nil, 0)
					Expect(res.Registers.Get(r)).To(Equal(v))
				}
			}
		})

		It("treats repeated add 1 like a single add N", func() {
			for _, n := range []int{1, 2, 7, 50} {
				repeated := "set b2 11\n" + strings.Repeat("add b2 1\n", n)
				once := fmt.Sprintf("set b2 11\nadd b2 %d", n)

				Expect(run(repeated, nil, 0).Registers.Get(B2)).
					To(Equal(run(once, nil, 0).Registers.Get(B2)))
			}
		})

		It("treats repeated sub 1 like a single sub N", func() {
			repeated := strings.Repeat("sub c3 1\n", 9)
			Expect(run(repeated, nil, 0).Registers.Get(C3)).
				To(Equal(run("sub c3 9", nil, 0).Registers.Get(C3)))
		})

		It("halts an endless loop after exactly the budget", func() {
			for _, budget := range []int{1, 2, 10, 137, DefaultMaxSteps} {
				r := run("(spin)\nadd a1 1\n> (spin)", nil, budget)

				Expect(r.Status).To(Equal(HaltedBudget))
				Expect(r.Steps).To(Equal(budget))
				Expect(r.Fault).NotTo(HaveOccurred())
				Expect(linesContaining(r.Log, "step budget")).To(HaveLen(1))
			}
		})

		It("uses the reference budget by default", func() {
			r := run("(l)\n> (l)", nil, 0)

			Expect(r.Status).To(Equal(HaltedBudget))
			Expect(r.Steps).To(Equal(DefaultMaxSteps))
		})

		It("finishes normally when the last instruction uses the last step", func() {
			r := run("add a1 1\nadd a1 1", nil, 2)

			Expect(r.Status).To(Equal(HaltedNormal))
			Expect(r.Steps).To(Equal(2))
		})

		It("lands on the label index without re-running the jump", func() {
			m := Load("", "set a1 1\n> (skip)\nset a1 2\n(skip)\nshow a1", nil, 0)

			Expect(m.Step()).To(BeTrue())
			Expect(m.Step()).To(BeTrue())
			Expect(m.Result().PC).To(Equal(3))
			Expect(m.Result().Steps).To(Equal(2))

			r := m.Run()
			Expect(r.Registers.Get(A1)).To(Equal(int64(1)))
			Expect(r.Steps).To(Equal(4))
		})

		It("never changes the program it runs", func() {
			m := Load("", "(a)\nadd a1 1\ncheck a1 < 5 then > (a)", nil, 0)
			before := fmt.Sprint(m.state.Code)

			m.Run()

			Expect(fmt.Sprint(m.state.Code)).To(Equal(before))
		})
	})

	Context("faults", func() {
		It("reports the index of the offending instruction", func() {
			r := run("set a1 1\nset b2 2\nadd q9 1\nshow a1", nil, 0)

			Expect(r.Status).To(Equal(HaltedError))
			Expect(r.PC).To(Equal(2))
			Expect(r.Steps).To(Equal(2))
			Expect(r.Fault).To(MatchError(ErrUndeclaredRegister))
			Expect(linesContaining(r.Log, "OUT:")).To(BeEmpty())
		})

		It("halts on an unknown instruction instead of skipping it", func() {
			r := run("set a1 1\nmul a1 2\nshow a1", nil, 0)

			Expect(r.Status).To(Equal(HaltedError))
			Expect(r.PC).To(Equal(1))
			Expect(r.Steps).To(Equal(1))
			Expect(r.Fault).To(MatchError(ErrUnknownInstruction))
			Expect(linesContaining(r.Log, "mul a1 2")).To(HaveLen(1))
			Expect(linesContaining(r.Log, "OUT:")).To(BeEmpty())
		})

		It("halts on duplicate labels before running anything", func() {
			r := run("(x)\nshow a1\n(x)", nil, 0)

			Expect(r.Status).To(Equal(HaltedError))
			Expect(r.Steps).To(Equal(0))
			Expect(r.PC).To(Equal(2))

			var conflict *LabelConflictError
			Expect(errors.As(r.Fault, &conflict)).To(BeTrue())
			Expect(linesContaining(r.Log, "OUT:")).To(BeEmpty())
		})

		It("does not step after halting", func() {
			m := Load("", "> (nope)", nil, 0)
			m.Run()

			Expect(m.Step()).To(BeFalse())
			Expect(m.Status()).To(Equal(HaltedError))
		})
	})

	It("runs an assembled program like its source", func() {
		src := "import nolib\nset b2 4\n(x)\nsub b2 1\ncheck b2 > 0 then x\nshow b2"

		program, warnings := Assemble("", src, nil)
		got := LoadProgram(program, warnings, 0).Run()
		want := run(src, nil, 0)

		Expect(got.Status).To(Equal(want.Status))
		Expect(got.Steps).To(Equal(want.Steps))
		Expect(got.Log).To(Equal(want.Log))
		Expect(got.Warnings).To(Equal(want.Warnings))
	})

	It("halts normally on an empty program", func() {
		r := run("", nil, 0)

		Expect(r.Status).To(Equal(HaltedNormal))
		Expect(r.Steps).To(Equal(0))
		Expect(r.Log).To(BeEmpty())
	})

	It("names every status", func() {
		Expect(HaltedNormal.String()).To(Equal("Halted-Normal"))
		Expect(HaltedBudget.String()).To(Equal("Halted-Budget"))
		Expect(HaltedError.String()).To(Equal("Halted-Error"))
		Expect(Running.String()).To(Equal("Running"))
	})
})

var _ = Describe("Core", func() {
	It("produces the same result on the event engine", func() {
		src := "(loop)\nadd a1 2\ncheck a1 < 10 then > (loop)\nshow a1"

		want := run(src, nil, 0)
		got, err := RunOnEngine(Load("", src, nil, 0))

		Expect(err).NotTo(HaveOccurred())
		Expect(got.Status).To(Equal(want.Status))
		Expect(got.Steps).To(Equal(want.Steps))
		Expect(got.Log).To(Equal(want.Log))
		Expect(got.Registers.Map()).To(Equal(want.Registers.Map()))
	})

	It("stops at the step budget", func() {
		got, err := RunOnEngine(Load("", "(l)\n> (l)", nil, 25))

		Expect(err).NotTo(HaveOccurred())
		Expect(got.Status).To(Equal(HaltedBudget))
		Expect(got.Steps).To(Equal(25))
	})

	It("does not tick a machine that is already halted", func() {
		got, err := RunOnEngine(Load("", "(d)\n(d)", nil, 0))

		Expect(err).NotTo(HaveOccurred())
		Expect(got.Status).To(Equal(HaltedError))
		Expect(got.Steps).To(Equal(0))
	})
})
