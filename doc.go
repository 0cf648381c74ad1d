// Package nullspace provides a NASA bioscience study explorer library
// for Go.
//
// NULLspace assembles deduplicated knowledge graphs over research
// study records, ranks studies against free-text queries, and serves
// both through an HTTP API. Study records come from the NASA GeneLab
// catalog, with a bundled local catalog as the offline path.
//
// # Basic Usage
//
// Create a new Explorer client with the required components:
//
//	// Local catalog, no network required
//	catalog, err := source.NewLocal()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Deterministic summaries without a model
//	summarizer := summarize.NewStatic()
//
//	client, err := nullspace.NewClient(catalog, summarizer, nullspace.DefaultOptions())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	graph, err := client.KnowledgeGraph(ctx, nil)
//
// # Knowledge Graphs
//
// KnowledgeGraph builds a deduplicated entity graph over a batch of
// studies. Experiments, organisms, missions, and keywords become
// nodes; organisms that share a keyword through their experiments are
// linked with derived similarity edges. The payload carries layout and
// style metadata for a Cytoscape front end.
//
// # Ranking
//
// Search scores studies lexically against a query. Matching is
// substring and token based, computed per request with no persistent
// index.
package nullspace
