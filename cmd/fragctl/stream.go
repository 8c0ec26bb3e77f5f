package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/danmuck/assembler/internal/manifest"
	"github.com/danmuck/assembler/internal/observability"
	"github.com/danmuck/assembler/internal/protocol"
	"github.com/danmuck/assembler/internal/protocol/fragment"
)

const manifestSuffix = ".manifest"

func runSplit(e *env, args []string) (stats, error) {
	flags := newFlagSet(e, "split")
	in := flags.String("in", "", "input file")
	out := flags.String("out", "", "output record stream")
	manifestPath := flags.String("manifest", "", "manifest path (default <out>.manifest when write_manifest is set)")
	if err := flags.Parse(args); err != nil {
		return stats{}, err
	}
	if err := requireFlag("in", *in); err != nil {
		return stats{}, err
	}
	if err := requireFlag("out", *out); err != nil {
		return stats{}, err
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return stats{}, fmt.Errorf("read input: %w", err)
	}
	frags := e.asm.DisassembleBytes(data)
	if err := writeRecords(*out, frags); err != nil {
		return stats{}, err
	}

	path := *manifestPath
	if path == "" && e.cfg.WriteManifest {
		path = *out + manifestSuffix
	}
	if path != "" {
		raw, err := manifest.Marshal(manifest.Build(data))
		if err != nil {
			return stats{}, err
		}
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return stats{}, fmt.Errorf("write manifest: %w", err)
		}
	}
	fmt.Fprintf(e.out, "split %d bytes into %d fragments -> %s\n", len(data), len(frags), *out)
	return stats{bytes: len(data), fragments: len(frags)}, nil
}

func runJoin(e *env, args []string) (stats, error) {
	flags := newFlagSet(e, "join")
	in := flags.String("in", "", "input record stream")
	out := flags.String("out", "", "output file")
	manifestPath := flags.String("manifest", "", "manifest to verify against (default <in>.manifest if present)")
	if err := flags.Parse(args); err != nil {
		return stats{}, err
	}
	if err := requireFlag("in", *in); err != nil {
		return stats{}, err
	}
	if err := requireFlag("out", *out); err != nil {
		return stats{}, err
	}

	frags, err := readRecords(*in, e.asm.Limits())
	if err != nil {
		return stats{}, err
	}
	data, err := e.asm.ReassembleBytes(frags)
	if err != nil {
		return stats{fragments: len(frags)}, err
	}

	m, ok, err := loadManifest(*manifestPath, *in+manifestSuffix)
	if err != nil {
		return stats{fragments: len(frags)}, err
	}
	if ok {
		if err := m.Verify(data); err != nil {
			observability.RecordFailure(observability.StageVerify, err)
			return stats{bytes: len(data), fragments: len(frags)}, err
		}
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return stats{}, fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(e.out, "joined %d fragments into %d bytes -> %s\n", len(frags), len(data), *out)
	return stats{bytes: len(data), fragments: len(frags)}, nil
}

func runInspect(e *env, args []string) (stats, error) {
	flags := newFlagSet(e, "inspect")
	in := flags.String("in", "", "input record stream")
	if err := flags.Parse(args); err != nil {
		return stats{}, err
	}
	if err := requireFlag("in", *in); err != nil {
		return stats{}, err
	}
	frags, err := readRecords(*in, e.asm.Limits())
	if err != nil {
		return stats{}, err
	}
	size := 0
	for i := range frags {
		f := &frags[i]
		size += int(f.Length)
		fmt.Fprintf(e.out, "index=%d total=%d length=%d\n", f.Index, f.Total, f.Length)
	}
	fmt.Fprintf(e.out, "%d records, %d payload bytes\n", len(frags), size)
	return stats{bytes: size, fragments: len(frags)}, nil
}

func runTags(e *env, args []string) (stats, error) {
	flags := newFlagSet(e, "tags")
	if err := flags.Parse(args); err != nil {
		return stats{}, err
	}
	for _, tag := range protocol.Tags() {
		fmt.Fprintf(e.out, "%3d  %s\n", tag, tag)
	}
	return stats{}, nil
}

func writeRecords(path string, frags []fragment.Fragment) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := fragment.WriteFragments(w, frags); err != nil {
		f.Close()
		return fmt.Errorf("write records: %w", err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write records: %w", err)
	}
	return f.Close()
}

func readRecords(path string, limits fragment.Limits) ([]fragment.Fragment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	frags, err := fragment.ReadFragments(bufio.NewReader(f), limits)
	if err != nil {
		observability.RecordFailure(observability.StageRead, err)
		return nil, fmt.Errorf("read records: %w", err)
	}
	return frags, nil
}

// loadManifest reads explicit, or fallback when explicit is empty and the
// fallback file exists.
func loadManifest(explicit, fallback string) (manifest.Manifest, bool, error) {
	path := explicit
	if path == "" {
		if _, err := os.Stat(fallback); errors.Is(err, fs.ErrNotExist) {
			return manifest.Manifest{}, false, nil
		}
		path = fallback
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return manifest.Manifest{}, false, fmt.Errorf("read manifest: %w", err)
	}
	m, err := manifest.Unmarshal(raw)
	if err != nil {
		return manifest.Manifest{}, false, err
	}
	return m, true, nil
}
