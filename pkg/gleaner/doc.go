// Package gleaner provides named entity and event extraction for news
// text: a statistical labeler merged with pattern rules, an event rule
// table with attribute capture, per-run statistics, and span highlighting.
//
// Quick start:
//
//	g, err := gleaner.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer g.Close()
//
//	res := g.Process(context.Background(), "Acme Corp announced that shares rose 5%.")
//	for _, e := range res.Entities {
//	    fmt.Println(e.Type, e.Text)
//	}
//
// The Gleaner instance is safe for concurrent use. Create once, reuse
// across requests.
package gleaner
