// Package wasmhost adapts a wazero runtime to the interp-guard model.
//
// A Store owns a wazero.Runtime and a store-wide exclusivity lock that
// serializes guest execution and the host state shared between instances.
// Guest code runs through Run and Call with the lock held; host functions
// exposed through the bind package release it for the duration of their
// native bodies, so goroutines driving other instances can make progress
// while one instance waits on native work.
//
//	s := wasmhost.New(ctx)
//	defer s.Close(ctx)
//
//	reg := bind.NewRegistry()
//	reg.RegisterFunc("env", "add", func(a, b uint32) uint32 { return a + b })
//	if err := s.Bind(reg); err != nil {
//	    log.Fatal(err)
//	}
//	if err := s.Instantiate(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	mod, err := s.Run(ctx, guestWASM)
//	res, err := s.Call(ctx, mod, "run", 2, 3)
//
// # Signatures
//
// The wazero host ABI moves numeric values only: int32, uint32, int64,
// uint64, float32 and float64, with an optional leading context.Context.
// Expose rejects anything else at registration time. Only the default call
// policy exists; there is no ownership to configure for values that cross
// by copy on the wasm stack.
package wasmhost
