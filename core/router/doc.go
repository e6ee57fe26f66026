// Package router bridges a compiled route set to net/http. It decodes each
// incoming request into a route value, hands it to the application handler,
// and renders the returned response, converting decode failures and panics
// into terminal error responses.
//
//	routes := route.Must[Site](...)
//
//	h := router.New(routes, func(r *http.Request, rt Site) handler.Response {
//		switch rt := rt.(type) {
//		case Home:
//			return response.HTML(homePage())
//		case ShowUser:
//			return showUser(r.Context(), rt.UserID)
//		default:
//			return response.Error(response.ErrNotFound)
//		}
//	})
//
//	http.ListenAndServe(addr, h)
//
// The router itself adds no timeouts and owns no per-request state beyond
// the response writer wrapper; cancellation and deadlines belong to the
// surrounding server.
package router
