package main

import (
	"fmt"

	"github.com/viant/coderef/processor"
	"github.com/viant/coderef/processor/c"
	"github.com/viant/coderef/processor/cpp"
	"github.com/viant/coderef/processor/python"
)

// resolveProcessors maps a §6 language tag to the processor(s) that handle
// it. An empty tag registers every processor, so a project tree can mix
// languages in one pass.
func resolveProcessors(lang string) ([]processor.Processor, error) {
	switch lang {
	case "":
		return []processor.Processor{python.New(), c.New(), cpp.New()}, nil
	case "python":
		return []processor.Processor{python.New()}, nil
	case "c":
		return []processor.Processor{c.New()}, nil
	case "cpp":
		return []processor.Processor{cpp.New()}, nil
	default:
		return nil, fmt.Errorf("coderef: unknown language tag %q (want python, c, or cpp)", lang)
	}
}
