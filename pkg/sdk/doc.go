// Package leitor provides an embedded Go client for the leitor reading
// engine: PDF paging and zoom, highlights with notes, and dictionary
// lookups, all running in-process with memory-only state.
//
//	client, _ := leitor.New(
//	    leitor.WithOpenAILookup(os.Getenv("LOOKUP_API_KEY"), "", "gpt-4o-mini"),
//	)
//	doc, _ := client.Documents().Open(ctx, "artigo.pdf", payload)
//	view, _ := client.Viewer(doc.ID).Next(ctx)
//
//	_ = client.Annotations(doc.ID).Select(ctx, "um trecho", view.CurrentPage)
//	h, _ := client.Annotations(doc.ID).Highlight(ctx, "yellow")
//
//	entry, _ := client.Lookup(doc.ID).Lookup(ctx, "palavra")
//
// All state is process-lifetime: closing a document or restarting the
// process discards its session, highlights and dictionary panel.
package leitor
