package utils

import (
	"context"
	"log"
	"runtime"
)

func stack() []byte {
	buf := make([]byte, 8096)
	return buf[:runtime.Stack(buf, false)]
}

func CatchPanicWithCancel(cancel context.CancelFunc) {
	if err := recover(); err != nil {
		log.Printf("recovered panic:\n%s", stack())
		cancel()
	}
}

func CatchPanicWithFallback(onPanic func(any)) {
	if err := recover(); err != nil {
		log.Printf("recovered panic:\n%s", stack())
		onPanic(err)
	}
}
