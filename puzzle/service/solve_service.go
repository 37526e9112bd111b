package service

import (
	"context"

	"github.com/gridrush/rushhour/puzzle/engine"
)

// SolveService defines all solver-facing operations
type SolveService interface {
	// Board Catalog
	ListBoards(ctx context.Context) ([]*BoardInfo, error)
	GetBoard(ctx context.Context, boardName string) (*BoardDetail, error)
	SaveBoard(ctx context.Context, boardName, text string) (*BoardDetail, error)

	// Solving
	Solve(ctx context.Context, req *SolveRequest) (*SolveResponse, error)
	SolveText(ctx context.Context, req *SolveTextRequest) (*SolveResponse, error)
	Compare(ctx context.Context, req *CompareRequest) (*CompareResponse, error)
	Bench(ctx context.Context, req *BenchRequest) (*BenchResponse, error)

	// Strategies
	ListStrategies(ctx context.Context) []*StrategyInfo

	// Stored Results
	GetResult(ctx context.Context, resultID string) (*SolveRecord, error)
	ListResults(ctx context.Context) ([]*SolveRecord, error)
	DeleteResult(ctx context.Context, resultID string) error
}

// BoardCatalog handles puzzle board loading
type BoardCatalog interface {
	LoadBoard(name string) (*engine.Board, error)
	ListBoards() ([]*BoardInfo, error)
	GetDefault() *engine.Board
	SaveBoard(name, text string) (*engine.Board, error)
}

// ResultStore keeps completed solves addressable by ID
type ResultStore interface {
	Create(id string, resp *SolveResponse) (*SolveRecord, error)
	Get(id string) (*SolveRecord, error)
	List() []*SolveRecord
	Delete(id string) error
}
