package todo

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Cyclone1070/workbench/internal/config"
	"github.com/Cyclone1070/workbench/internal/tool/contentutil"
	"github.com/Cyclone1070/workbench/internal/tool/index"
)

// markerPattern matches a marker word followed by optional punctuation and
// the remainder of the line.
var markerPattern = regexp.MustCompile(`\b(TODO|FIXME|HACK|XXX)\b[:\s]*(.*)`)

var supportedMarkers = map[string]struct{}{
	"TODO":  {},
	"FIXME": {},
	"HACK":  {},
	"XXX":   {},
}

// fileOps defines the minimal filesystem interface needed for scanning.
type fileOps interface {
	ReadFile(path string) ([]byte, error)
}

// ScanRequest asks for marker comments across indexed files.
type ScanRequest struct {
	// Marker restricts the scan to one marker. Empty scans all of them.
	Marker string `json:"marker,omitempty"`
	// PathPrefix restricts the scan to files under a workspace-relative prefix.
	PathPrefix string `json:"path_prefix,omitempty"`
}

// Validate checks the request against the supported marker set.
func (r *ScanRequest) Validate(cfg *config.Config) error {
	if r.Marker != "" {
		r.Marker = strings.ToUpper(r.Marker)
		if _, ok := supportedMarkers[r.Marker]; !ok {
			return ErrUnknownMarker
		}
	}
	r.PathPrefix = strings.Trim(filepath.ToSlash(r.PathPrefix), "/")
	return nil
}

// Match is a single marker comment found in a file.
type Match struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Marker string `json:"marker"`
	Text   string `json:"text"`
}

// ScanResponse lists marker comments, grouped by file path order.
type ScanResponse struct {
	Matches   []Match `json:"matches"`
	Total     int     `json:"total"`
	Truncated bool    `json:"truncated"`
}

// ScanTool finds TODO/FIXME/HACK/XXX comments in indexed text files.
type ScanTool struct {
	workspaceRoot string
	fs            fileOps
	store         *index.Store
	cfg           *config.Config
	logger        *zap.Logger
}

// NewScanTool creates a scan tool over the current index snapshot.
func NewScanTool(workspaceRoot string, fs fileOps, store *index.Store, cfg *config.Config, logger *zap.Logger) *ScanTool {
	if workspaceRoot == "" {
		panic("workspaceRoot is required")
	}
	if fs == nil {
		panic("fs is required")
	}
	if store == nil {
		panic("store is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &ScanTool{
		workspaceRoot: workspaceRoot,
		fs:            fs,
		store:         store,
		cfg:           cfg,
		logger:        logger,
	}
}

// Run scans every indexed source, config, and doc file for markers.
// Unreadable files are logged and skipped.
func (t *ScanTool) Run(req *ScanRequest) (*ScanResponse, error) {
	if err := req.Validate(t.cfg); err != nil {
		return nil, err
	}
	catalog := t.store.Load()
	if catalog == nil {
		return nil, index.ErrIndexNotBuilt
	}

	// Stable file order so repeated scans return identical output.
	paths := make([]string, 0, len(catalog.Entries))
	for rel, entry := range catalog.Entries {
		if entry.Priority > index.PriorityDocs {
			continue
		}
		if req.PathPrefix != "" && !hasPathPrefix(rel, req.PathPrefix) {
			continue
		}
		paths = append(paths, rel)
	}
	sort.Strings(paths)

	resp := &ScanResponse{}
	for _, rel := range paths {
		if resp.Truncated {
			break
		}
		t.scanFile(rel, req.Marker, resp)
	}
	resp.Total = len(resp.Matches)
	return resp, nil
}

func (t *ScanTool) scanFile(rel, marker string, resp *ScanResponse) {
	abs := filepath.Join(t.workspaceRoot, filepath.FromSlash(rel))
	data, err := t.fs.ReadFile(abs)
	if err != nil {
		t.logger.Warn("skipping unreadable file during todo scan", zap.String("path", rel), zap.Error(err))
		return
	}
	if contentutil.IsBinaryContent(data) {
		return
	}

	for i, line := range contentutil.SplitLines(string(data)) {
		groups := markerPattern.FindStringSubmatch(line)
		if groups == nil {
			continue
		}
		if marker != "" && groups[1] != marker {
			continue
		}
		resp.Matches = append(resp.Matches, Match{
			File:   rel,
			Line:   i + 1,
			Marker: groups[1],
			Text:   strings.TrimSpace(groups[2]),
		})
		if len(resp.Matches) >= t.cfg.Tools.MaxTodoResults {
			resp.Truncated = true
			return
		}
	}
}

func hasPathPrefix(rel, prefix string) bool {
	return rel == prefix || strings.HasPrefix(rel, prefix+"/")
}
