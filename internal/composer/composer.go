package composer

import (
	"fmt"
	"strings"

	"vendorrag/internal/domain"
)

// NoResultsAnswer is returned verbatim when filtering leaves nothing to
// ground an answer on. The generator is not called in that case.
const NoResultsAnswer = "No relevant products found."

const promptTemplate = `
Assistant for construction procurement. Use ONLY context from the scraped product database (real product details) and Catalog Materials.
Context:
%s
Query: %s
Instructions:
- Prioritize real product data (titles, prices, details, sellers, companies, ratings).
- Use Catalog Materials to suggest specific materials and match them to products.
- Be comprehensive but concise. Include prices, availability, GST, ratings where available.
- Output in structured format:
Products (list 2-3 most relevant, using catalog for specificity):
1. Name / Brand / Price / Availability / Location / Vendor / URL / Catalog Match

Vendors (list 2-3):
1. Company Name / Address / GST (mention if after 2017) / Rating / Contact

- If info is missing, say "Not specified in context".
- No fabrication. Stick to real product data and catalog.
Answer:
`

// detail keys worth surfacing in the prompt, in render order
var importantDetailKeys = []string{
	"usage/application", "brand", "availability", "location", "vendor",
	"company", "model", "capacity", "warranty",
}

// Options bound the context handed to the text-generation collaborator.
type Options struct {
	MaxContextDocs  int // results rendered into the prompt
	DocCharBudget   int // per-document character cap
	ContextCharCap  int // whole-context character cap
	PromptCharCap   int // whole-prompt character cap
	AnswerMaxTokens int
}

// DefaultOptions returns the standard context budgets.
func DefaultOptions() Options {
	return Options{
		MaxContextDocs:  3,
		DocCharBudget:   500,
		ContextCharCap:  3000,
		PromptCharCap:   6000,
		AnswerMaxTokens: 2048,
	}
}

// Composer assembles the bounded prompt context, delegates to the text
// generator, and post-processes the answer (source list, estimate table).
type Composer struct {
	gen  domain.Generator
	opts Options
}

func New(gen domain.Generator, opts Options) *Composer {
	if opts.MaxContextDocs <= 0 {
		opts = DefaultOptions()
	}
	return &Composer{gen: gen, opts: opts}
}

// Compose builds the final answer for a query from the filtered results,
// the extracted requirements, the material estimates, and the facility's
// catalog materials. A generation failure becomes displayable answer text;
// the returned Answer is always well-formed.
func (c *Composer) Compose(query string, results []domain.SearchResult, req domain.ProjectRequirements, estimates []domain.MaterialEstimate, catalogMaterials []string) domain.Answer {
	if len(results) == 0 {
		return domain.Answer{Text: NoResultsAnswer, Sources: []string{}, Estimates: estimates}
	}

	prompt := c.buildPrompt(query, results, estimates, catalogMaterials)
	text, err := c.gen.Generate(prompt, c.opts.AnswerMaxTokens)
	if err != nil {
		text = "Error generating response: " + err.Error()
	}
	text = strings.TrimSpace(text)

	if len(estimates) > 0 {
		text += "\n\nMaterial Estimates:\n" + FormatMaterialTable(estimates)
	}

	return domain.Answer{
		Text:      text,
		Sources:   dedupSources(results),
		Results:   len(results),
		Estimates: estimates,
	}
}

func (c *Composer) buildPrompt(query string, results []domain.SearchResult, estimates []domain.MaterialEstimate, catalogMaterials []string) string {
	var ctx strings.Builder
	n := len(results)
	if n > c.opts.MaxContextDocs {
		n = c.opts.MaxContextDocs
	}
	for i := 0; i < n; i++ {
		doc := renderDocument(results[i].Meta)
		if len(doc) > c.opts.DocCharBudget {
			doc = doc[:c.opts.DocCharBudget]
		}
		fmt.Fprintf(&ctx, "Document %d:\n%s\n\n", i+1, doc)
	}
	if len(estimates) > 0 {
		ctx.WriteString("Materials:\n")
		for i, m := range estimates {
			if i == 3 {
				break
			}
			fmt.Fprintf(&ctx, "- %s (%.0f %s)\n", m.Equipment, m.Quantity, m.Unit)
		}
		ctx.WriteString("\n")
	}
	if len(catalogMaterials) > 0 {
		ctx.WriteString("Catalog Materials:\n")
		for i, mat := range catalogMaterials {
			if i == 5 {
				break
			}
			fmt.Fprintf(&ctx, "- %s\n", mat)
		}
		ctx.WriteString("\n")
	}

	context := ctx.String()
	if len(context) > c.opts.ContextCharCap {
		context = context[:c.opts.ContextCharCap] + "\n... (context truncated)"
	}
	prompt := fmt.Sprintf(promptTemplate, context, query)
	if len(prompt) > c.opts.PromptCharCap {
		prompt = prompt[:c.opts.PromptCharCap] + "\n... (truncated to fit token limit)"
	}
	return prompt
}

// renderDocument flattens the fields of one result's metadata that matter
// to the generator: title, url, price, the important details, GST, and the
// overall rating.
func renderDocument(meta domain.Record) string {
	var b strings.Builder
	title := meta.Title
	if title == "" {
		title = "N/A"
	}
	fmt.Fprintf(&b, "Title: %s\n", title)
	if meta.URL != "" {
		fmt.Fprintf(&b, "URL: %s\n", meta.URL)
	}
	if meta.Price != "" {
		fmt.Fprintf(&b, "Price: %s\n", strings.TrimSpace(meta.Price+" "+meta.PriceUnit))
	}
	for _, key := range importantDetailKeys {
		v := strings.TrimSpace(meta.Details[key])
		if v == "" || v == "-" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", titleCase(strings.ReplaceAll(key, "/", " ")), v)
	}
	if gst := meta.CompanyInfo["gst"]; gst != "" {
		fmt.Fprintf(&b, "GST: %s\n", gst)
	}
	if rating, ok := meta.OverallRating(); ok {
		fmt.Fprintf(&b, "Rating: %s\n", rating)
	}
	return b.String()
}

// FormatMaterialTable renders estimates as a markdown table.
func FormatMaterialTable(estimates []domain.MaterialEstimate) string {
	if len(estimates) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("| Material/Equipment | Quantity | Unit | Cost (Rupees) | Catalog Source |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, m := range estimates {
		source := m.CatalogSource
		if source == "" {
			source = "N/A"
		}
		fmt.Fprintf(&b, "| %s | %.0f | %s | %.2f Crores | %s |\n",
			m.Equipment, m.Quantity, m.Unit, m.CostCrores, source)
	}
	return b.String()
}

// dedupSources collects the non-empty source URLs of the results,
// first-seen order, no duplicates.
func dedupSources(results []domain.SearchResult) []string {
	seen := make(map[string]struct{}, len(results))
	sources := make([]string, 0, len(results))
	for _, r := range results {
		url := r.Meta.URL
		if url == "" {
			continue
		}
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		sources = append(sources, url)
	}
	return sources
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
