package mq

// RocketMQ 只支持固定的18个延迟级别
var delayLevelSeconds = []int{
	1, 5, 10, 30,
	60, 120, 180, 240, 300, 360, 420, 480, 540, 600,
	1200, 1800, 3600, 7200,
}

// NearestDelayLevel 返回与目标秒数最接近的延迟级别（1-18）
func NearestDelayLevel(seconds int) int {
	best := 1
	bestDiff := -1
	for i, levelSeconds := range delayLevelSeconds {
		diff := seconds - levelSeconds
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best = i + 1
			bestDiff = diff
		}
	}
	return best
}
