// Package sources は異種のニュース上流（フィード・スクレイピング・RESTクエリ）を
// 共通の正規化アイテム列に変換するフェッチャー群を提供します。
//
// 各フェッチャーはusecase.SourceFetcherを実装します。取得やパースの失敗は
// そのソース単体の失敗であり、呼び出し側の収集ループを止めません。
package sources
