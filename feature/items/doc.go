// Package items is the catalog ingestion feature.
//
// It ties the dump parser, identity resolver, range-merge engine and provenance
// ledger together behind a Service, and exposes it over HTTP:
//
//	GET    /items               list records (cached, filters q/type/flagged/id/userId)
//	GET    /items/:id           one record with contributors
//	POST   /items               ingest a raw dump or pre-parsed items
//	POST   /items/preview       parse only
//	POST   /items/confirm       proceed with or cancel a held batch
//	POST   /items/:id/review    set the review flag or duplicate reference
//	DELETE /items?id=|?all=true operator deletion (admin bearer token)
//	GET    /contributors/:name  submitter stats
//
// # Ingestion
//
// A request is classified first: every observation is validated and resolved
// against the catalog in arrival order. If any observation has the identity of
// an existing record but different content, the batch is held and nothing is
// written until the caller confirms. Accepted observations are then written one
// at a time; a lost write race is retried once against a fresh read.
//
// Raw dumps are archived to object storage when the archive is enabled.
package items
