// Command froid bridges Relay global object identification and Apollo Federation.
//
// A federation gateway resolves entities by sending their representations to
// froid, which answers with entity stubs carrying a global ID. Clients later
// query node(id:) with that ID and froid decodes it back into the fields the
// owning subgraph needs to resolve the entity.
//
// The global ID is Base64(typeName + ":" + Base64(payload)), where payload is
// the canonical JSON of the representation fields without __typename,
// optionally compressed with brotli.
//
// Usage:
//
//	froid encode --type DemoBook '{"bookId":1}'
//	froid decode RGVtb0Jvb2s6ZXlKaWIyOXJTV1FpT2pGOQ==
//	froid serve --listen :8080 --path /graphql
//
// Flags can also be set in $HOME/.froid.yaml or through FROID_ prefixed
// environment variables, e.g. FROID_TRANSFORM=brotli.
package main
