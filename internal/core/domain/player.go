package domain

import "github.com/google/uuid"

// OfflinePlayer 代表一個不需在線的玩家身分。
// 只攜帶身分資訊，不攜帶任何餘額狀態，餘額操作請透過 economy capability。
type OfflinePlayer struct {
	ID   uuid.UUID // 玩家唯一標識符 (離線模式由名稱推導)
	Name string    // 玩家顯示名稱
}
