package pacer

import "time"

// Delayer は、外部API呼び出しなどの連続する操作の間に待機を挟むインターフェースです。
type Delayer interface {
	Wait()
}

// Pacer は連続する呼び出しの間に固定の礼儀的ディレイ（courtesy delay）を挟みます。
// 上流プロバイダーのレートリミットを超えないための、意図的なスループット制限です。
type Pacer struct {
	interval time.Duration
	sleep    func(time.Duration) // テストで差し替え可能
}

// New は指定された間隔で待機するPacerの新しいインスタンスを生成します。
func New(interval time.Duration) *Pacer {
	return &Pacer{interval: interval, sleep: time.Sleep}
}

// NewWithSleep はスリープ関数を注入してPacerを生成します。テスト用です。
func NewWithSleep(interval time.Duration, sleep func(time.Duration)) *Pacer {
	return &Pacer{interval: interval, sleep: sleep}
}

// Wait は設定された間隔だけ待機します。間隔が0以下の場合は何もしません。
func (p *Pacer) Wait() {
	if p.interval <= 0 {
		return
	}
	p.sleep(p.interval)
}
