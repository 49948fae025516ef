package rules

import (
	"fmt"
	"strings"

	"github.com/lightfix/lightfix/internal/domain"
)

// fixThreshold is the score below which an audit gets a fix. It is
// deliberately stricter than the analyzer's failure threshold: audits
// in the 0.5-0.9 band pass Lighthouse but still leave savings behind.
const fixThreshold = 0.9

// frameworkChunkMarker identifies framework-bundled build output in
// unused-javascript item URLs.
const frameworkChunkMarker = "/_next/static/chunks/"

// categoryOrder is the fixed category traversal order for the fix
// pass. Held as a slice: the report stores categories in a map.
var categoryOrder = []string{
	"performance",
	"accessibility",
	"seo",
	"best-practices",
}

// Rule maps one failing audit to a fix. Rules are pure; all wording
// and priorities are fixed per rule, not derived from audit severity.
type Rule func(audit *domain.Audit) domain.Fix

// ruleTable is the audit-ID dispatch table. Audit IDs absent from this
// table are intentionally ignored even when they fail.
var ruleTable = map[string]Rule{
	// performance
	"server-response-time":      serverResponseTime,
	"unused-javascript":         unusedJavascript,
	"speed-index":               speedIndex,
	"lcp-breakdown-insight":     lcpBreakdown,
	"document-latency-insight":  documentLatency,
	"max-potential-fid":         maxPotentialFID,
	"render-blocking-resources": renderBlockingResources,
	"unminified-css":            unminifiedCSS,
	"unminified-javascript":     unminifiedJavascript,
	"unused-css-rules":          unusedCSSRules,
	"modern-image-formats":      modernImageFormats,
	"offscreen-images":          offscreenImages,
	"uses-optimized-images":     usesOptimizedImages,
	"document-title":            documentTitle,

	// accessibility
	"color-contrast": colorContrast,
	"heading-order":  headingOrder,
	"image-alt":      imageAlt,
	"label":          label,
	"button-name":    buttonName,
	"link-name":      linkName,

	// seo
	"meta-description": metaDescription,
	"canonical":        canonical,
	"structured-data":  structuredData,

	// best-practices
	"errors-in-console":       errorsInConsole,
	"valid-source-maps":       validSourceMaps,
	"bf-cache":                bfCache,
	"viewport":                viewport,
	"http-status-code":        httpStatusCode,
	"no-vulnerable-libraries": noVulnerableLibraries,
}

// Options narrows a fix run.
type Options struct {
	// Category restricts the pass to one category ID; empty runs all.
	Category string
}

// Engine walks a report's failing audits and accumulates fixes. One
// engine per invocation; the fix list is reachable only through Run.
type Engine struct {
	report *domain.Report
	config domain.ProjectConfig
	opts   Options
	fixes  []domain.Fix
}

func NewEngine(report *domain.Report, config domain.ProjectConfig, opts Options) *Engine {
	return &Engine{report: report, config: config, opts: opts}
}

// Run iterates the four categories in fixed order, dispatches each
// failing mapped audit to its rule, and returns the accumulated fixes.
// After the performance pass it additionally checks unused-javascript
// for framework-bundled chunks.
func (e *Engine) Run() []domain.Fix {
	for _, catID := range categoryOrder {
		if e.opts.Category != "" && e.opts.Category != catID {
			continue
		}
		cat, ok := e.report.Category(catID)
		if ok {
			e.runCategory(cat)
		}
		if catID == "performance" {
			e.detectFrameworkChunks()
		}
	}
	return e.fixes
}

func (e *Engine) runCategory(cat *domain.Category) {
	for _, ref := range cat.AuditRefs {
		audit, ok := e.report.Audit(ref.ID)
		if !ok {
			continue
		}
		if audit.Score == nil || *audit.Score >= fixThreshold {
			continue
		}
		if e.config.Skipped(ref.ID) {
			continue
		}
		rule, ok := ruleTable[ref.ID]
		if !ok {
			continue // not in the allow-list
		}
		e.addFix(rule(audit))
	}
}

func (e *Engine) addFix(fix domain.Fix) {
	e.fixes = append(e.fixes, fix)
}

// detectFrameworkChunks synthesizes one extra fix when the
// unused-javascript audit reports waste inside framework-bundled
// chunks. Its byte total covers only the matching chunks.
func (e *Engine) detectFrameworkChunks() {
	audit, ok := e.report.Audit("unused-javascript")
	if !ok || audit.Details == nil {
		return
	}
	if audit.Score == nil || *audit.Score >= fixThreshold || e.config.Skipped(audit.ID) {
		return
	}

	var chunkBytes float64
	var chunkCount int
	for _, item := range audit.Details.Items {
		if strings.Contains(item.Str("url"), frameworkChunkMarker) {
			chunkBytes += item.Num("wastedBytes")
			chunkCount++
		}
	}
	if chunkCount == 0 {
		return
	}

	e.addFix(domain.Fix{
		Title:       "Framework bundle carries unused JavaScript",
		Priority:    domain.PriorityMedium,
		Impact:      fmt.Sprintf("%s of unused code inside framework chunks", formatBytes(chunkBytes)),
		Description: "Part of the unused JavaScript lives in framework-generated chunks. Shrink them with dynamic imports and by auditing what each page actually pulls in.",
		Diagnosis:   fmt.Sprintf("%d framework chunk(s) account for %s of unused JavaScript.", chunkCount, formatBytes(chunkBytes)),
		Fixes: []domain.Snippet{
			{
				Type:  "javascript",
				Title: "Load heavy components on demand",
				Code: "import dynamic from 'next/dynamic';\n\n" +
					"const HeavyChart = dynamic(() => import('../components/HeavyChart'), {\n" +
					"  loading: () => <Skeleton />,\n" +
					"  ssr: false,\n" +
					"});",
			},
			{
				Type:  "bash",
				Title: "Inspect what each chunk contains",
				Code:  "npx @next/bundle-analyzer\n# or, for any webpack build:\nnpx webpack-bundle-analyzer .next/analyze/client.json",
			},
		},
	})
}
