//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package feat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writetsv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "posts.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPosts(t *testing.T) {
	tsv := "post_id\tpost_text\tlabel\n" +
		"a1\tvaccines cause outrage online\tfake\n" +
		"a2\tcity opens a new hospital wing\treal\n" +
		"a3\tshort row\n" +
		"a4\taliens run the government\t0\n"

	posts, err := LoadPosts(writetsv(t, tsv), true)
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, "a1", posts[0].ID)
	assert.Equal(t, 0, posts[0].Label)
	assert.Equal(t, 1, posts[1].Label)
	assert.Equal(t, 0, posts[2].Label)
}

func TestLoadPostsColumnOrderIsFree(t *testing.T) {
	tsv := "label\tpost_text\tpost_id\n" +
		"real\tthe council met on tuesday\tb1\n"

	posts, err := LoadPosts(writetsv(t, tsv), true)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "b1", posts[0].ID)
	assert.Equal(t, "the council met on tuesday", posts[0].Text)
	assert.Equal(t, 1, posts[0].Label)
}

func TestLoadPostsMissingLabelColumn(t *testing.T) {
	tsv := "post_id\tpost_text\n" +
		"a1\tsomething happened\n"

	posts, err := LoadPosts(writetsv(t, tsv), true)
	assert.Error(t, err)
	assert.Empty(t, posts)

	// the same file is fine when labels are not wanted
	posts, err = LoadPosts(writetsv(t, tsv), false)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, -1, posts[0].Label)
}

func TestLoadPostsRejectsUnknownLabel(t *testing.T) {
	tsv := "post_id\tpost_text\tlabel\n" +
		"a1\tsomething happened\tmaybe\n"

	_, err := LoadPosts(writetsv(t, tsv), true)
	assert.Error(t, err)
}

func TestSentimentVector(t *testing.T) {
	v := SentimentVector("this fake hoax is terrible!!")
	require.Len(t, v, 5)
	assert.Greater(t, v[1], 0.0)  // negative hits
	assert.Less(t, v[3], 0.0)     // polarity
	assert.Greater(t, v[4], 0.0)  // exclamations

	pos := SentimentVector("a great and wonderful success")
	assert.Greater(t, pos[0], 0.0)
	assert.Greater(t, pos[3], 0.0)

	empty := SentimentVector("")
	assert.Equal(t, make([]float64, 5), empty)
}

func TestSplit(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	train, val := Split(items, 0.2)
	assert.Len(t, train, 8)
	assert.Len(t, val, 2)

	all, none := Split(items, 0.0)
	assert.Len(t, all, 10)
	assert.Empty(t, none)
}
