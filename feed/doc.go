// Package feed serves flood results to a renderer over HTTP and WebSocket.
//
// A Server owns one height field and source mask. It answers:
//
//	GET /result  the default run as a JSON Message
//	GET /ws      a WebSocket; the server pushes the default Message on
//	             connect, then answers every Params message the client
//	             sends with a fresh "result" Message, or an "error"
//	             Message when the parameters are rejected.
//
// Messages are row-major with row 0 at Window.MaxY, matching raster.HeightField.
package feed
