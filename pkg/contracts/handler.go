package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every HTTP handler group mounted on the
// application router.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
