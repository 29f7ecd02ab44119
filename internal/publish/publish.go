package publish

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
)

const notebookExt = ".ipynb"

// Converter turns notebook files into HTML documents in outDir, one
// document per input file, named after the input with the extension
// replaced.
type Converter interface {
	Convert(outDir string, files []string) error
}

// NbConvert is the Converter that shells out to jupyter nbconvert.
type NbConvert struct {
	Bin string // jupyter executable, "jupyter" when empty
}

func (n NbConvert) Convert(outDir string, files []string) error {
	bin := n.Bin
	if bin == "" {
		bin = "jupyter"
	}
	args := append([]string{"nbconvert", "--to", "html", "--output-dir=" + outDir}, files...)

	output, err := exec.Command(bin, args...).CombinedOutput()
	if err != nil {
		if len(output) > 0 {
			return fmt.Errorf("nbconvert failed: %w: %s", err, strings.TrimSpace(string(output)))
		}
		return fmt.Errorf("nbconvert failed: %w", err)
	}
	return nil
}

// Publisher converts a tree of notebooks into HTML, mirroring the
// directory layout and copying every other file along.
type Publisher struct {
	Converter Converter
}

func NewPublisher(c Converter) *Publisher {
	return &Publisher{Converter: c}
}

// Result lists what one publishing run produced.
type Result struct {
	Converted []string // html files written by the converter
	Copied    []string // plain files copied over
}

// Run publishes inputDir into outputDir. The output directory is
// recreated from scratch, notebooks are converted one directory at a
// time, and links between converted notebooks are rewritten to point
// at the HTML files that replaced them. Per-file failures are
// collected and reported together after the run.
func (p *Publisher) Run(inputDir, outputDir string) (*Result, error) {
	info, err := os.Stat(inputDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("input directory does not exist: %s", inputDir)
	}
	if err := InitTree(outputDir, true, false); err != nil {
		return nil, err
	}

	run := &runState{conv: p.Converter}
	run.walkDir(inputDir, outputDir)

	res := &Result{Copied: run.copied}
	for _, c := range run.converted {
		res.Converted = append(res.Converted, filepath.Join(c.outDir, c.base+".html"))
	}
	run.fixLinks()

	return res, run.errs.ErrorOrNil()
}

type convertedNotebook struct {
	outDir string
	base   string
}

type runState struct {
	conv      Converter
	converted []convertedNotebook
	copied    []string
	errs      *multierror.Error
}

// walkDir handles one directory level: recurse into subdirectories,
// batch-convert the notebooks found here, copy the rest. Entries
// starting with a dot are left alone.
func (r *runState) walkDir(inDir, outDir string) {
	if err := InitTree(outDir, false, false); err != nil {
		r.errs = multierror.Append(r.errs, err)
		return
	}

	entries, err := os.ReadDir(inDir)
	if err != nil {
		r.errs = multierror.Append(r.errs, err)
		return
	}

	var notebooks []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		switch {
		case entry.IsDir():
			r.walkDir(filepath.Join(inDir, name), filepath.Join(outDir, name))
		case strings.HasSuffix(name, notebookExt):
			notebooks = append(notebooks, name)
		default:
			dst := filepath.Join(outDir, name)
			if err := copyFile(filepath.Join(inDir, name), dst); err != nil {
				r.errs = multierror.Append(r.errs, err)
			} else {
				r.copied = append(r.copied, dst)
			}
		}
	}

	if len(notebooks) == 0 {
		return
	}
	files := make([]string, 0, len(notebooks))
	for _, name := range notebooks {
		files = append(files, filepath.Join(inDir, name))
	}
	if err := r.conv.Convert(outDir, files); err != nil {
		r.errs = multierror.Append(r.errs, err)
		return
	}
	for _, name := range notebooks {
		r.converted = append(r.converted, convertedNotebook{
			outDir: outDir,
			base:   strings.TrimSuffix(name, notebookExt),
		})
	}
}

// fixLinks rewrites href and src references between converted
// notebooks so they point at the HTML files that replaced them.
// References to anything that was not converted stay untouched.
func (r *runState) fixLinks() {
	if len(r.converted) == 0 {
		return
	}

	names := make([]string, len(r.converted))
	for i, c := range r.converted {
		names[i] = regexp.QuoteMeta(c.base)
	}
	pattern := regexp.MustCompile(
		`\b((?:href|src)=['"](?:[^'"]*/)?(?:` + strings.Join(names, "|") + `))\.ipynb(['"])`,
	)

	for _, c := range r.converted {
		pathName := filepath.Join(c.outDir, c.base+".html")
		data, err := os.ReadFile(pathName)
		if err != nil {
			r.errs = multierror.Append(r.errs, err)
			continue
		}
		fixed := pattern.ReplaceAll(data, []byte("${1}.html${2}"))
		if err := os.WriteFile(pathName, fixed, 0o644); err != nil {
			r.errs = multierror.Append(r.errs, err)
		}
	}
}

// copyFile copies src over dst, replacing whatever was there.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// InitTree makes sure dir exists. With fresh set, existing content is
// removed first: everything when gentle is unset, files only when
// gentle is set.
func InitTree(dir string, fresh, gentle bool) error {
	_, err := os.Stat(dir)
	exists := err == nil

	if fresh && exists {
		if gentle {
			if err := ClearTree(dir); err != nil {
				return err
			}
		} else if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}
	return os.MkdirAll(dir, 0o755)
}

// ClearTree removes all files under dir recursively but keeps the
// directory skeleton in place. Dot entries are left alone.
func ClearTree(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		full := filepath.Join(dir, name)
		if entry.IsDir() {
			if err := ClearTree(full); err != nil {
				return err
			}
		} else if err := os.Remove(full); err != nil {
			return err
		}
	}
	return nil
}
