// Package httpclient はkvgatewayのHTTP APIを呼び出すGoクライアントを提供する。
//
// POST /set、GET /get/:key、GET /health をGoのメソッドとして呼び出し、
// エラーエンベロープを *StatusError に変換する。
package httpclient
