package middleware

import "github.com/aretw0/tabula/pkg/ports"

// Middleware allows wrapping a TableStore to add behavior.
type Middleware func(ports.TableStore) ports.TableStore

// Chain applies middlewares so that the first one is the outermost.
func Chain(store ports.TableStore, mws ...Middleware) ports.TableStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
