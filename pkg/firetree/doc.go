// Package firetree is a thin client for a remote JSON document tree exposed
// over HTTP, in the style of the Firebase Realtime Database REST surface.
//
// A Client addresses documents by slash-separated paths relative to a base
// URI. Five operations cover the surface: Get reads, Set overwrites, Push
// appends under a server-generated key, Update merges, and Remove deletes.
// Every operation returns a Result carrying the response status, headers
// and raw body; interpretation of the body is left to the caller.
//
//	client, err := firetree.New("https://store.example.com",
//		firetree.WithToken(os.Getenv("FIRETREE_TOKEN")),
//		firetree.WithTimeout(5*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	res, err := client.Set(ctx, "users/jack", map[string]any{"name": "Jack"})
//
// Failures reach the caller as typed errors: SerializationError when the
// payload cannot be encoded, TransportError when the round trip itself
// fails. A served error status (4xx, 5xx) is not an error; it is a Result
// with the status the server chose.
package firetree
