package registry

import (
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/amar-at-iitm/primer/internal/types"
)

// CrossrefAnalyzer resolves Markdown links between lessons so listings can
// show related notes and doctor can report links that go nowhere.
type CrossrefAnalyzer struct {
	registry *LessonRegistry
	fsys     fs.FS
}

// NewCrossrefAnalyzer creates an analyzer reading lesson bodies from fsys,
// which must be the same tree the lessons were scanned from.
func NewCrossrefAnalyzer(registry *LessonRegistry, fsys fs.FS) *CrossrefAnalyzer {
	return &CrossrefAnalyzer{
		registry: registry,
		fsys:     fsys,
	}
}

// markdownLink matches inline links whose target is a Markdown file,
// capturing the target. Anchors and external URLs are filtered later.
var markdownLink = regexp.MustCompile(`\[[^\]]*\]\(([^)\s]+\.md)\)`)

// AnalyzeLesson reads a lesson body and returns the slugs it links to and
// the link targets that resolve to no known lesson.
func (ca *CrossrefAnalyzer) AnalyzeLesson(lesson *types.LessonInfo) (related, dangling []string, err error) {
	content, err := fs.ReadFile(ca.fsys, lesson.FilePath)
	if err != nil {
		return nil, nil, err
	}

	related, dangling = ca.AnalyzeContent(string(content), lesson.Slug)
	return related, dangling, nil
}

// AnalyzeContent extracts lesson links from raw Markdown. Links inside
// fenced code blocks and links to external URLs are ignored, as are
// self-references.
func (ca *CrossrefAnalyzer) AnalyzeContent(content, selfSlug string) (related, dangling []string) {
	relatedSet := make(map[string]bool)
	danglingSet := make(map[string]bool)

	inFence := false
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		for _, match := range markdownLink.FindAllStringSubmatch(line, -1) {
			target := match[1]
			if strings.Contains(target, "://") {
				continue
			}

			ref := strings.TrimSuffix(path.Base(target), ".md")
			lesson, exists := ca.registry.BySlug(ref)
			if !exists {
				danglingSet[target] = true
				continue
			}
			if lesson.Slug != selfSlug {
				relatedSet[lesson.Slug] = true
			}
		}
	}

	related = setToSorted(relatedSet)
	dangling = setToSorted(danglingSet)
	return related, dangling
}

// UpdateAll re-analyzes every registered lesson and stores the resolved
// links on the registry entries. Unreadable lessons are skipped; the
// scanner already reported them.
func (ca *CrossrefAnalyzer) UpdateAll() error {
	for _, lesson := range ca.registry.GetAll() {
		related, _, err := ca.AnalyzeLesson(lesson)
		if err != nil {
			continue
		}

		ca.registry.mutex.Lock()
		if existing := ca.registry.lessons[lesson.Slug]; existing != nil {
			existing.Related = related
		}
		ca.registry.mutex.Unlock()
	}

	return nil
}

// Referrers returns the lessons whose bodies link to the given slug
func (ca *CrossrefAnalyzer) Referrers(slug string) []*types.LessonInfo {
	var referrers []*types.LessonInfo

	ca.registry.mutex.RLock()
	defer ca.registry.mutex.RUnlock()

	for _, lesson := range ca.registry.lessons {
		for _, related := range lesson.Related {
			if related == slug {
				referrers = append(referrers, lesson)
				break
			}
		}
	}

	sort.Slice(referrers, func(i, j int) bool {
		return referrers[i].Slug < referrers[j].Slug
	})

	return referrers
}

// Graph returns the full lesson link graph keyed by slug
func (ca *CrossrefAnalyzer) Graph() map[string][]string {
	graph := make(map[string][]string)

	ca.registry.mutex.RLock()
	defer ca.registry.mutex.RUnlock()

	for slug, lesson := range ca.registry.lessons {
		graph[slug] = make([]string, len(lesson.Related))
		copy(graph[slug], lesson.Related)
	}

	return graph
}

// Dangling returns, per lesson slug, the link targets that resolve to no
// known lesson. Lessons with no dangling links are omitted.
func (ca *CrossrefAnalyzer) Dangling() map[string][]string {
	result := make(map[string][]string)

	for slug, lesson := range ca.registry.GetAll() {
		_, dangling, err := ca.AnalyzeLesson(lesson)
		if err != nil {
			continue
		}
		if len(dangling) > 0 {
			result[slug] = dangling
		}
	}

	return result
}

func setToSorted(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
