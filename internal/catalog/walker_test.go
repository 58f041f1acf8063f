package catalog_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/oas-tools/oasctl/internal/catalog"
	"github.com/oas-tools/oasctl/internal/saw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLister serves a catalog tree from a map of folder path to children.
type fakeLister struct {
	tree    map[string][]saw.ItemInfo
	failing map[string]bool

	listed []string
}

func (f *fakeLister) GetSubItems(folder, sessionID string) ([]saw.ItemInfo, error) {
	f.listed = append(f.listed, folder)
	if f.failing[folder] {
		return nil, errors.New("access denied")
	}
	return f.tree[folder], nil
}

func folder(path string) saw.ItemInfo {
	return saw.ItemInfo{Path: path, Type: saw.ItemTypeFolder, Signature: "fold1"}
}

func object(path, signature string) saw.ItemInfo {
	return saw.ItemInfo{Path: path, Type: "Object", Signature: signature}
}

func TestFind(t *testing.T) {
	t.Parallel()

	tree := map[string][]saw.ItemInfo{
		"/shared": {
			folder("/shared/Sales"),
			object("/shared/Daily Alert", "coibot1"),
			object("/shared/Revenue Report", "queryitem1"),
		},
		"/shared/Sales": {
			folder("/shared/Sales/EMEA"),
			object("/shared/Sales/Pipeline Alert", "coibot1"),
			object("/shared/Sales/Pipeline", "queryitem1"),
		},
		"/shared/Sales/EMEA": {
			object("/shared/Sales/EMEA/Forecast Alert", "coibot1"),
		},
	}

	tests := map[string]struct {
		signature string
		failing   map[string]bool

		want []string
	}{
		"Agents across all levels": {
			signature: "coibot1",
			want:      []string{"/shared/Daily Alert", "/shared/Sales/Pipeline Alert", "/shared/Sales/EMEA/Forecast Alert"},
		},
		"Analyses only": {
			signature: "queryitem1",
			want:      []string{"/shared/Revenue Report", "/shared/Sales/Pipeline"},
		},
		"No matching signature": {
			signature: "dashboard1",
			want:      nil,
		},
		"Failing subfolder is skipped": {
			signature: "coibot1",
			failing:   map[string]bool{"/shared/Sales/EMEA": true},
			want:      []string{"/shared/Daily Alert", "/shared/Sales/Pipeline Alert"},
		},
		"Failing branch drops its whole subtree": {
			signature: "coibot1",
			failing:   map[string]bool{"/shared/Sales": true},
			want:      []string{"/shared/Daily Alert"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			lister := &fakeLister{tree: tree, failing: tc.failing}
			w := catalog.New(slog.Default(), lister)

			got, err := w.Find("/shared", tc.signature, "session1")
			require.NoError(t, err, "Find should not return an error")

			assert.ElementsMatch(t, tc.want, got, "Find should collect exactly the matching paths")
		})
	}
}

func TestFindRootFailure(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{failing: map[string]bool{"/shared": true}}
	w := catalog.New(slog.Default(), lister)

	_, err := w.Find("/shared", "coibot1", "session1")
	require.Error(t, err, "Find should fail when the root folder cannot be listed")
}

func TestFindEachFolderListedOnce(t *testing.T) {
	t.Parallel()

	tree := map[string][]saw.ItemInfo{
		"/shared":   {folder("/shared/A"), folder("/shared/B")},
		"/shared/A": {object("/shared/A/Alert", "coibot1")},
		"/shared/B": nil,
	}

	lister := &fakeLister{tree: tree}
	w := catalog.New(slog.Default(), lister)

	_, err := w.Find("/shared", "coibot1", "session1")
	require.NoError(t, err, "Find should not return an error")

	assert.ElementsMatch(t, []string{"/shared", "/shared/A", "/shared/B"}, lister.listed,
		"Find should list every folder exactly once")
}
