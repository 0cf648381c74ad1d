// Package source provides study record catalogs. The primary catalog
// is the NASA GeneLab REST API; a bundled local catalog serves as the
// offline and degradation path. Decorators add circuit breaking,
// caching, and primary-to-secondary fallback.
package source
