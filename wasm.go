//go:build js && wasm

package main

import (
	"context"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/cottand/coeffects/cmd"
	"github.com/cottand/coeffects/problem"
)

func main() {
	js.Global().Set("SolveAndShow", js.FuncOf(solveAndShow))

	// wait indefinitely so that Go does not terminate execution
	// and the function remains available
	<-make(chan struct{})
}

// solveAndShow solves the problem file passed as the first argument,
// and shows the solution of each problem, checking those with an expectation.
//
// output: { error: string } | { output: string, failed: number }
func solveAndShow(_ js.Value, args []js.Value) (ret any) {
	errorObj := func(err string) any {
		return js.ValueOf(map[string]any{
			"error": err,
		})
	}
	defer func() {
		if r := recover(); r != nil {
			ret = errorObj("solver panicked: " + fmt.Sprint(r))
		}
	}()
	if len(args) < 1 {
		return errorObj("expected a problem file")
	}

	problems, err := problem.Parse([]byte(args[0].String()))
	if err != nil {
		return errorObj(err.Error())
	}
	outcomes, err := problem.SolveAll(context.Background(), problems)
	if err != nil {
		return errorObj(err.Error())
	}
	sb := &strings.Builder{}
	failed := cmd.WriteOutcomes(sb, outcomes, false, true)
	return js.ValueOf(map[string]any{
		"output": sb.String(),
		"failed": failed,
	})
}
