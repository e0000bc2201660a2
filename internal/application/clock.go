package application

import "time"

// Clock interface supaya "now" bisa diinject dan gampang ditest.
// Dipakai generator (tanggal header), lifecycle timestamps, dan
// window mingguan di analytics.
type Clock interface {
	Now() time.Time
}

// SystemClock implementasi default, pakai time.Now()
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
