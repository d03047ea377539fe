// Package gateway はキーバリューストアのHTTPゲートウェイを提供する。
//
// HTTPリクエストを検証し、ストアのGet/Setに変換して、結果を
// ステータスコードとJSONエンベロープに対応付ける。ゲートウェイ自身は
// 状態を持たず、キャッシュもリトライもしない。
//
// ルーティング:
//   - GET  /          固定の挨拶文
//   - POST /set       {"key", "value"} を書き込む
//   - GET  /get/:key  値を読み出す
//   - GET  /health    ストアへの疎通確認
//   - GET  /metrics   Prometheusメトリクス
package gateway
