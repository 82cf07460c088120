package ir

import (
	"fmt"
	"log/slog"
	"strings"
)

// SlogList wraps a list as a slog.LogValuer so it is only rendered when the record is actually logged
func SlogList[S fmt.Stringer](items []S) slog.LogValuer {
	return listLogValuer[S](items)
}

type listLogValuer[S fmt.Stringer] []S

func (l listLogValuer[S]) LogValue() slog.Value {
	strs := make([]string, 0, len(l))
	for _, item := range l {
		strs = append(strs, item.String())
	}
	return slog.StringValue("[" + strings.Join(strs, "; ") + "]")
}
