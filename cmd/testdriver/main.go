// Command testdriver runs a handful of canned scenarios against pool and
// framer and reports pass/fail, for use as a quick smoke check of a built
// binary without pulling in the test toolchain.
package main

import (
	"fmt"
	"os"

	"github.com/Lovening/craftrix/framer"
	"github.com/Lovening/craftrix/pool"
)

type scenario struct {
	name string
	run  func() error
}

func main() {
	scenarios := []scenario{
		{"pool basic allocate/destroy", scenarioPoolBasic},
		{"pool overflow with bounded chunks", scenarioPoolOverflow},
		{"pool leak detection on close", scenarioPoolLeak},
		{"framer split input", scenarioFramerSplit},
		{"framer multiple documents", scenarioFramerMultiDoc},
		{"framer top-level array", scenarioFramerArray},
	}

	failed := 0
	for _, s := range scenarios {
		if err := s.run(); err != nil {
			fmt.Printf("FAIL  %s: %v\n", s.name, err)
			failed++
			continue
		}
		fmt.Printf("PASS  %s\n", s.name)
	}

	if failed > 0 {
		fmt.Printf("\n%d scenario(s) failed\n", failed)
		os.Exit(1)
	}
	fmt.Println("\nall scenarios passed")
}

func scenarioPoolBasic() error {
	p, err := pool.New[int](pool.WithChunkBlockCount(8))
	if err != nil {
		return err
	}
	defer p.MustClose()

	v, err := p.Construct(42)
	if err != nil {
		return err
	}
	if *v != 42 {
		return fmt.Errorf("expected 42, got %d", *v)
	}
	p.Destroy(v)
	if p.AllocatedCount() != 0 {
		return fmt.Errorf("expected 0 allocated after destroy, got %d", p.AllocatedCount())
	}
	return nil
}

func scenarioPoolOverflow() error {
	p, err := pool.New[int](pool.WithChunkBlockCount(2), pool.WithMaxChunks(1))
	if err != nil {
		return err
	}
	defer p.MustClose()

	a, err := p.Allocate()
	if err != nil {
		return err
	}
	b, err := p.Allocate()
	if err != nil {
		return err
	}
	if _, err := p.Allocate(); err != pool.ErrExhausted {
		return fmt.Errorf("expected ErrExhausted, got %v", err)
	}
	p.Destroy(a)
	p.Destroy(b)
	return nil
}

func scenarioPoolLeak() error {
	p, err := pool.New[int](pool.WithChunkBlockCount(4))
	if err != nil {
		return err
	}
	if _, err := p.Allocate(); err != nil {
		return err
	}
	if err := p.Close(); err == nil {
		return fmt.Errorf("expected leak error, got nil")
	}
	return nil
}

func scenarioFramerSplit() error {
	var got []string
	fr := framer.NewIncremental(func(doc []byte) { got = append(got, string(doc)) }, nil)
	fr.Feed([]byte(`{"a":`))
	fr.Feed([]byte(`1}`))
	if len(got) != 1 || got[0] != `{"a":1}` {
		return fmt.Errorf("unexpected result: %v", got)
	}
	return nil
}

func scenarioFramerMultiDoc() error {
	var got []string
	fr := framer.NewIncremental(func(doc []byte) { got = append(got, string(doc)) }, nil)
	fr.Feed([]byte("  {\"a\":1}  {\"b\":2}  "))
	if len(got) != 2 {
		return fmt.Errorf("expected 2 documents, got %d", len(got))
	}
	return nil
}

func scenarioFramerArray() error {
	var got []string
	fr := framer.NewIncremental(func(doc []byte) { got = append(got, string(doc)) }, nil)
	input := `[{"id":1},{"id":2}]`
	fr.Feed([]byte(input))
	if len(got) != 1 || got[0] != input {
		return fmt.Errorf("unexpected result: %v", got)
	}
	return nil
}
