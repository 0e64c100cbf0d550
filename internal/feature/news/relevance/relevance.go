// Package relevance は自由文のニュース本文を追跡中のティッカーに対応付けます。
package relevance

import "strings"

// aliases はティッカーごとの別名（社名・製品名・経営者名など）の静的テーブルです。
// テーブルにない銘柄はティッカー文字列そのものの一致のみで判定されます。
var aliases = map[string][]string{
	"AAPL":   {"Apple", "iPhone", "iPad", "Mac"},
	"MSFT":   {"Microsoft", "Windows", "Office", "Azure"},
	"GOOGL":  {"Google", "Alphabet", "YouTube", "Android"},
	"AMZN":   {"Amazon", "AWS", "Prime"},
	"TSLA":   {"Tesla", "Elon Musk", "Model S", "Model 3", "Model X", "Model Y"},
	"META":   {"Facebook", "Meta", "Instagram", "WhatsApp"},
	"NVDA":   {"NVIDIA", "Nvidia", "GPU", "AI"},
	"005930": {"삼성전자", "Samsung", "Galaxy"},
	"000660": {"SK하이닉스", "SK Hynix", "메모리"},
	"035420": {"네이버", "Naver", "라인"},
}

// Aliases は指定されたティッカーの別名リストを返します。テーブルにない場合は空です。
func Aliases(ticker string) []string {
	return aliases[ticker]
}

// Match はtextに関連する候補ティッカーの部分集合を重複なしで返します。
// 判定は大文字小文字を無視した単純な部分文字列一致で、ティッカー本体または
// 別名のいずれかが含まれれば一致とします。ステミングや否定の解釈は行わないため、
// 短いティッカーが一般の単語と衝突する偽陽性は既知の制限として受け入れています。
func Match(text string, candidates []string) []string {
	lower := strings.ToLower(text)

	var matched []string
	seen := map[string]struct{}{}
	for _, ticker := range candidates {
		if _, ok := seen[ticker]; ok {
			continue
		}
		if containsFold(lower, ticker) {
			matched = append(matched, ticker)
			seen[ticker] = struct{}{}
			continue
		}
		for _, alias := range aliases[ticker] {
			if containsFold(lower, alias) {
				matched = append(matched, ticker)
				seen[ticker] = struct{}{}
				break
			}
		}
	}
	return matched
}

// containsFold はlower（小文字化済み）にsが含まれるかを判定します。
func containsFold(lower, s string) bool {
	return strings.Contains(lower, strings.ToLower(s))
}
