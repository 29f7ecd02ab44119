package convert

import (
	"fmt"
	"os/exec"
	"strings"
)

// Options locates the external tools needed to turn a RelaxNG schema
// into an XSD one.
type Options struct {
	JavaBin  string // java executable, "java" when empty
	TrangJar string // path to trang.jar
}

// OutputPath derives the .xsd path FromRelax writes for in.
func OutputPath(in string) string {
	return strings.TrimSuffix(in, ".rng") + ".xsd"
}

// Command builds the trang invocation without running it.
func Command(opts Options, in, out string) *exec.Cmd {
	java := opts.JavaBin
	if java == "" {
		java = "java"
	}
	return exec.Command(java, "-jar", opts.TrangJar, in, out)
}

// FromRelax converts a RelaxNG schema file into an equivalent XSD file
// next to it, using James Clark's trang. Requires a working java.
func FromRelax(opts Options, in string) (string, error) {
	out := OutputPath(in)
	cmd := Command(opts, in, out)

	output, err := cmd.CombinedOutput()
	if err != nil {
		if len(output) > 0 {
			return "", fmt.Errorf("trang conversion of %s failed: %w: %s", in, err, strings.TrimSpace(string(output)))
		}
		return "", fmt.Errorf("trang conversion of %s failed: %w", in, err)
	}
	return out, nil
}
