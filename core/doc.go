// Package core holds the shared contracts of the TikTok Business client:
// configuration and the per-call resolver, the response envelope model, the
// error taxonomy, and transport interfaces. Adapters depend on core; core
// does not depend on them.
package core
