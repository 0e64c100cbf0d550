// Package dto defines response shapes for the Yahoo Finance APIs.
package dto

// ChartResponse はv8チャートAPI（日足バー）のレスポンスです。
// OHLCVは列ごとの配列で返り、timestampと同じ添字で対応します。
type ChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *APIError `json:"error"`
	} `json:"chart"`
}

// APIError はYahoo APIのエラーペイロードです。
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
