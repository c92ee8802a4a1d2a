package models

// Part описывает одну загруженную часть артефакта.
type Part struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Size  int64  `json:"size"`
}

// LoadResult возвращается после успешной загрузки и склейки частей.
type LoadResult struct {
	RunID      string `json:"run_id"`
	Parts      []Part `json:"parts"`
	TotalBytes int64  `json:"total_bytes"`
}

// ChunkPlan описывает, на сколько частей нужно разбить файл и какого они размера.
type ChunkPlan struct {
	Total int
	Size  int64
}
