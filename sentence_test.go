package pressdoc_test

import (
	"testing"

	"github.com/fwojciec/pressdoc"
	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	t.Parallel()

	t.Run("does not split on a period after a digit", func(t *testing.T) {
		t.Parallel()

		got := pressdoc.SplitSentences("발표일 2023.12.31 종료")

		assert.Equal(t, []string{"발표일 2023.12.31 종료"}, got)
	})

	t.Run("splits on terminators", func(t *testing.T) {
		t.Parallel()

		got := pressdoc.SplitSentences("첫 문장입니다. 두 번째입니까? 세 번째!")

		assert.Equal(t, []string{"첫 문장입니다", "두 번째입니까", "세 번째"}, got)
	})

	t.Run("keeps numbered list markers", func(t *testing.T) {
		t.Parallel()

		got := pressdoc.SplitSentences("1. 개요 2. 내용")

		assert.Equal(t, []string{"1. 개요 2. 내용"}, got)
	})

	t.Run("treats runs of terminators as one boundary", func(t *testing.T) {
		t.Parallel()

		got := pressdoc.SplitSentences("정말?! 그렇다...")

		assert.Equal(t, []string{"정말", "그렇다"}, got)
	})

	t.Run("returns nil for empty text", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, pressdoc.SplitSentences(""))
	})

	t.Run("returns nil when only terminators remain", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, pressdoc.SplitSentences(" . ! "))
	})
}

func TestCollapseSpace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", pressdoc.CollapseSpace("  a \n\t b   c "))
}

func TestInterleaveTables(t *testing.T) {
	t.Parallel()

	t.Run("places a table after each leading sentence", func(t *testing.T) {
		t.Parallel()

		got := pressdoc.InterleaveTables([]string{"s1", "s2", "s3"}, 2)

		assert.Equal(t, []string{"s1", "{table1}", "s2", "{table2}", "s3"}, got)
	})

	t.Run("appends surplus tables with continuing indices", func(t *testing.T) {
		t.Parallel()

		got := pressdoc.InterleaveTables([]string{"s1"}, 3)

		assert.Equal(t, []string{"s1", "{table1}", "{table2}", "{table3}"}, got)
	})

	t.Run("emits placeholders without sentences", func(t *testing.T) {
		t.Parallel()

		got := pressdoc.InterleaveTables(nil, 2)

		assert.Equal(t, []string{"{table1}", "{table2}"}, got)
	})

	t.Run("leaves sentences untouched without tables", func(t *testing.T) {
		t.Parallel()

		got := pressdoc.InterleaveTables([]string{"s1"}, 0)

		assert.Equal(t, []string{"s1"}, got)
	})
}
