// Package middleware はkvgatewayのGinルーターで使用する共通ミドルウェアを提供する。
//
// リクエストIDの付与、パニックリカバリ、リクエストログ、Prometheusメトリクス、
// CORS、書き込みAPI向けのJWT認証を含む。
// エラー時のレスポンスは常に {"error": "..."} 形式のJSONで返す。
package middleware
