// Package store はGatewayが利用するキーバリューストアのクライアントを提供する。
//
// ストアの実体は外部にあり、このパッケージはその接続ハンドルを
// Get/Set/Ping/Close の最小限の操作で抽象化する。
//
// 対応ドライバ:
//   - redis: 既定。ネットワーク越しのRedisに接続する
//   - sqlite: ローカルのSQLiteファイル（開発・検証用）
//   - bolt: ローカルのbboltファイル（開発・検証用）
//
// どのドライバも複数のgoroutineから同時に利用できる。
package store
