// Command primerlib builds primer libraries from candidate pools.
//
//	primerlib extract --pool pool.txt --strategy min-degree-elimination
//	primerlib edges --pool pool.txt --out edges.bin
//	primerlib generate --count 50000 --out pool.txt
//	primerlib check data/20240309-140507-greedy.txt
//
// Exit codes: 0 success, 1 other failure, 2 configuration error, 3 input
// error, 4 library check failed, 130 interrupted (partial results written).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
