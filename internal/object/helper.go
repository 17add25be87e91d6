package object

import (
	"bytes"
	"chai/internal/util"
	"fmt"
)

// RenderStacktrace formats rtErr against the program source: the message,
// the failing line with a caret, and one line per call frame.
func RenderStacktrace(rtErr *RuntimeError, src string, file string) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n", rtErr.Error())

	if rtErr.Positioned && src != "" {
		l, c := util.GetLineAndColumn(src, rtErr.Position)
		buf.WriteString("\n")
		buf.WriteString(util.GetContextLines(src, l, c, rtErr.Kind.String()))
		buf.WriteString("\n")
	}

	if len(rtErr.StackTrace) > 0 {
		buf.WriteString("\nStack trace:")
		buf.WriteString(formatRuntimeErrorStack(rtErr, src, file))
	}

	return buf.String()
}

func formatRuntimeErrorStack(rtErr *RuntimeError, src string, file string) string {
	var buf bytes.Buffer

	for _, frame := range rtErr.StackTrace {
		l, c := util.GetLineAndColumn(src, frame.Position)
		fmt.Fprintf(&buf, "\n  at [%3d:%3d] %-8s - %s", l, c, frame.Function, file)
	}

	return buf.String()
}
