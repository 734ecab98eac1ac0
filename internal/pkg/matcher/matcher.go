package matcher

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
)

// 匹配算法名称
const (
	AlgorithmWeighted    = "weighted"
	AlgorithmLevenshtein = "levenshtein"
	AlgorithmTokenSort   = "token-sort"
	AlgorithmJaroWinkler = "jaro-winkler"
)

// isSpace Unicode 空白，外加 U+001C-U+001F 信息分隔符
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// isWord 字母、数字或下划线
func isWord(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// Normalize 转小写、去掉首尾空白、删除非单词非空白字符。
// 删除标点后可能露出新的首尾空白（如 "hi !"），再裁剪一次以保证幂等。
func Normalize(text string) string {
	text = strings.TrimFunc(strings.ToLower(text), isSpace)
	text = strings.Map(func(r rune) rune {
		if isWord(r) || isSpace(r) {
			return r
		}
		return -1
	}, text)
	return strings.TrimFunc(text, isSpace)
}

// Match 最佳匹配结果
type Match struct {
	Text  string // 候选原文
	Index int    // 在候选列表中的位置
	Score int    // 0-100
}

// Matcher 在候选文本中寻找与查询最相近的一项
type Matcher interface {
	BestMatch(query string, candidates []string) (Match, bool)
}

// FuzzyMatcher 基于编辑距离的模糊匹配
type FuzzyMatcher struct {
	algorithm string
}

// NewFuzzyMatcher 创建模糊匹配器，未知算法回退到 weighted
func NewFuzzyMatcher(algorithm string) *FuzzyMatcher {
	switch algorithm {
	case AlgorithmLevenshtein, AlgorithmTokenSort, AlgorithmJaroWinkler, AlgorithmWeighted:
	default:
		algorithm = AlgorithmWeighted
	}
	return &FuzzyMatcher{algorithm: algorithm}
}

// Algorithm 返回当前算法
func (m *FuzzyMatcher) Algorithm() string {
	return m.algorithm
}

// BestMatch 返回得分最高的候选；平分时先出现者胜出
func (m *FuzzyMatcher) BestMatch(query string, candidates []string) (Match, bool) {
	if len(candidates) == 0 {
		return Match{}, false
	}

	q := Normalize(query)
	best := Match{Index: -1, Score: -1}
	for i, candidate := range candidates {
		score := m.Score(q, Normalize(candidate))
		if score > best.Score {
			best = Match{Text: candidate, Index: i, Score: score}
		}
	}
	return best, true
}

// Score 计算两个已规范化字符串的相似度（0-100）
func (m *FuzzyMatcher) Score(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}

	var ratio float64
	switch m.algorithm {
	case AlgorithmLevenshtein:
		ratio = levenshteinRatio(a, b)
	case AlgorithmTokenSort:
		ratio = levenshteinRatio(sortTokens(a), sortTokens(b))
	case AlgorithmJaroWinkler:
		ratio = float64(edlib.JaroWinklerSimilarity(a, b))
	default:
		ratio = math.Max(levenshteinRatio(a, b), levenshteinRatio(sortTokens(a), sortTokens(b)))
	}
	return int(math.Round(ratio * 100))
}

// levenshteinRatio 1 - 距离/较长串的rune数
func levenshteinRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(edlib.LevenshteinDistance(a, b))/float64(maxLen)
}

func sortTokens(s string) string {
	tokens := strings.FieldsFunc(s, isSpace)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
