// Package portage is the client SDK for the Portage peer-to-peer
// marketplace, where travelers carry goods across borders for buyers.
//
// The entry point is Client, created with New and functional options:
//
//	client, err := portage.New(
//		portage.WithBaseURL("https://api.portage.example"),
//		portage.WithLiveSearch(),
//	)
//
// Product search is driven by a QueryModel per view. Filter edits are
// staged on the model and committed as a unit by Apply, which validates
// the state, writes the cleaned query into the shareable URL, and
// schedules a debounced fetch:
//
//	q, err := client.NewQuery()
//	_ = q.Set(portage.FieldCategory, "electronics")
//	_ = q.Toggle(portage.FieldPickupOptions, "airport")
//	if err := q.Apply(); err != nil {
//		// q.Errors() holds per-group validation messages
//	}
//
// Auth, Dashboard, and Metadata expose the remaining marketplace
// surface. Session state (token, role, language) lives in the client;
// pass WithSessionPath to persist it across processes.
package portage
