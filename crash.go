package zen

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const crashContextLines = 3

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// crashFrame is the source location a crash report points at.
type crashFrame struct {
	file string
	line int
	fn   string
}

// WriteCrashReport writes a short report for err: a timestamp, the error,
// and, when err carries a stack (see github.com/pkg/errors), the origin
// file, line and function with a few lines of surrounding source.
func WriteCrashReport(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "%s\n", time.Now().Format("2006-01-02 15:04:05"))
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)

	fr, ok := originFrame(err)
	if !ok {
		return
	}
	_, _ = fmt.Fprintf(w, "  Line: %d\n", fr.line)
	_, _ = fmt.Fprintf(w, "  File: %s\n", filepath.Base(fr.file))
	if fr.fn != "" {
		_, _ = fmt.Fprintf(w, "  Function: %s\n", fr.fn)
	}
	src, srcErr := sourceContext(fr.file, fr.line, crashContextLines)
	if srcErr != nil {
		_, _ = fmt.Fprintf(w, "  Context: unavailable (%v)\n", srcErr)
		return
	}
	_, _ = fmt.Fprintf(w, "  Context:\n%s", src)
}

// originFrame finds the innermost stack in err's chain and returns the frame
// that raised it. For recovered panics that is the first frame below the
// runtime's panic machinery.
func originFrame(err error) (crashFrame, bool) {
	var st errors.StackTrace
	for e := err; e != nil; e = stderrors.Unwrap(e) {
		if t, ok := e.(stackTracer); ok {
			st = t.StackTrace()
		}
	}
	if len(st) == 0 {
		return crashFrame{}, false
	}

	frames := make([]crashFrame, 0, len(st))
	for _, f := range st {
		pc := uintptr(f) - 1
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		file, line := fn.FileLine(pc)
		frames = append(frames, crashFrame{file: file, line: line, fn: fn.Name()})
	}
	if len(frames) == 0 {
		return crashFrame{}, false
	}

	sawRuntime := false
	for _, fr := range frames {
		if strings.HasPrefix(fr.fn, "runtime.") {
			sawRuntime = true
			continue
		}
		if sawRuntime {
			return fr, true
		}
	}
	return frames[0], true
}

// sourceContext returns the lines around line in file, with the target line
// marked.
func sourceContext(file string, line, around int) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		if n < line-around {
			continue
		}
		if n > line+around {
			break
		}
		marker := "   "
		if n == line {
			marker = "-> "
		}
		fmt.Fprintf(&b, "  %s%4d | %s\n", marker, n, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}
