package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type BoardInfo struct {
	Filename     string `json:"filename"`
	BoardID      string `json:"board_id"`
	Name         string `json:"name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	VehicleCount int    `json:"vehicle_count"`
}

type VehicleInfo struct {
	ID          string `json:"id"`
	Orientation string `json:"orientation"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Length      int    `json:"length"`
	Target      bool   `json:"target,omitempty"`
}

type BoardDetail struct {
	Grid     []string       `json:"grid"`
	Vehicles []*VehicleInfo `json:"vehicles"`
	Exit     Position       `json:"exit"`
}

type StrategyInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	OptimalMoves bool   `json:"optimal_moves"`
	OptimalCost  bool   `json:"optimal_cost"`
}

type SolveRequest struct {
	Board    string `json:"board"`
	Strategy string `json:"strategy"`
}

type MoveInfo struct {
	Vehicle   string `json:"vehicle"`
	Direction string `json:"direction"`
	Cost      int    `json:"cost"`
}

type SearchStats struct {
	Expanded  int `json:"expanded"`
	Generated int `json:"generated"`
}

type SolveResponse struct {
	Board      string      `json:"board"`
	Strategy   string      `json:"strategy"`
	Found      bool        `json:"found"`
	Cost       int         `json:"cost"`
	MoveCount  int         `json:"move_count"`
	Moves      []*MoveInfo `json:"moves,omitempty"`
	Frames     [][]string  `json:"frames,omitempty"`
	Stats      SearchStats `json:"stats"`
	DurationMS float64     `json:"duration_ms"`
	Message    string      `json:"message,omitempty"`
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) ListBoards() ([]BoardInfo, error) {
	resp, err := c.client.Get(c.baseURL + "/api/boards")
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list boards failed: %s - %s", resp.Status, string(body))
	}

	var boards []BoardInfo
	if err := json.Unmarshal(body, &boards); err != nil {
		return nil, fmt.Errorf("parse boards: %w", err)
	}
	return boards, nil
}

func (c *Client) GetBoard(boardID string) (*BoardDetail, error) {
	resp, err := c.client.Get(c.baseURL + "/api/boards/" + boardID)
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get board failed: %s - %s", resp.Status, string(body))
	}

	var detail BoardDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("parse board: %w", err)
	}
	return &detail, nil
}

func (c *Client) ListStrategies() ([]StrategyInfo, error) {
	resp, err := c.client.Get(c.baseURL + "/api/strategies")
	if err != nil {
		return nil, fmt.Errorf("list strategies: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list strategies failed: %s - %s", resp.Status, string(body))
	}

	var strategies []StrategyInfo
	if err := json.Unmarshal(body, &strategies); err != nil {
		return nil, fmt.Errorf("parse strategies: %w", err)
	}
	return strategies, nil
}

func (c *Client) Solve(board, strategy string) (*SolveResponse, error) {
	reqBody, err := json.Marshal(SolveRequest{Board: board, Strategy: strategy})
	if err != nil {
		return nil, fmt.Errorf("marshal solve: %w", err)
	}

	resp, err := c.client.Post(c.baseURL+"/api/solve", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("solve failed: %s - %s", resp.Status, string(body))
	}

	var solveResp SolveResponse
	if err := json.Unmarshal(body, &solveResp); err != nil {
		return nil, fmt.Errorf("parse solve response: %w", err)
	}
	return &solveResp, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Solver server URL")
	boardList := flag.String("boards", "", "Comma-separated board IDs to check (default: all)")
	strategyList := flag.String("strategies", "", "Comma-separated strategy IDs to check (default: all)")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	log.Printf("Connecting to solver at %s", *serverURL)
	client := NewClient(*serverURL)

	boards, err := client.ListBoards()
	if err != nil {
		log.Fatalf("Failed to list boards: %v", err)
	}
	strategies, err := client.ListStrategies()
	if err != nil {
		log.Fatalf("Failed to list strategies: %v", err)
	}

	boards = filterBoards(boards, *boardList)
	strategies = filterStrategies(strategies, *strategyList)
	if len(boards) == 0 || len(strategies) == 0 {
		log.Fatalf("Nothing to check: %d boards and %d strategies selected", len(boards), len(strategies))
	}
	log.Printf("Checking %d boards against %d strategies", len(boards), len(strategies))

	checked := 0
	failed := 0
	for _, b := range boards {
		detail, err := client.GetBoard(b.BoardID)
		if err != nil {
			log.Printf("❌ %s: %v", b.BoardID, err)
			failed++
			continue
		}

		results := make(map[string]*SolveResponse, len(strategies))
		for _, strat := range strategies {
			checked++

			resp, err := client.Solve(b.BoardID, strat.ID)
			if err != nil {
				log.Printf("❌ %s/%s: %v", b.BoardID, strat.ID, err)
				failed++
				continue
			}
			results[strat.ID] = resp

			if err := validateSolution(detail, resp); err != nil {
				log.Printf("❌ %s/%s: %v", b.BoardID, strat.ID, err)
				failed++
				continue
			}

			if !resp.Found {
				log.Printf("✅ %s/%s: no solution, expanded %d states (%.1fms)",
					b.BoardID, strat.ID, resp.Stats.Expanded, resp.DurationMS)
				continue
			}
			log.Printf("✅ %s/%s: %d moves, cost %d, expanded %d (%.1fms)",
				b.BoardID, strat.ID, resp.MoveCount, resp.Cost, resp.Stats.Expanded, resp.DurationMS)
			if *verbose {
				for i, m := range resp.Moves {
					log.Printf("   %2d. %s %s", i+1, m.Vehicle, m.Direction)
				}
			}
		}

		for _, problem := range checkAgreement(strategies, results) {
			log.Printf("❌ %s: %s", b.BoardID, problem)
			failed++
		}
	}

	if failed > 0 {
		log.Printf("\n❌ %d of %d checks failed", failed, checked)
		os.Exit(1)
	}
	log.Printf("\n🎉 All %d checks passed", checked)
}

func keepSet(csv string) map[string]bool {
	if csv == "" {
		return nil
	}
	keep := make(map[string]bool)
	for _, id := range strings.Split(csv, ",") {
		if id = strings.TrimSpace(id); id != "" {
			keep[id] = true
		}
	}
	return keep
}

func filterBoards(boards []BoardInfo, csv string) []BoardInfo {
	keep := keepSet(csv)
	if keep == nil {
		return boards
	}
	var out []BoardInfo
	for _, b := range boards {
		if keep[b.BoardID] {
			out = append(out, b)
		}
	}
	return out
}

func filterStrategies(strategies []StrategyInfo, csv string) []StrategyInfo {
	keep := keepSet(csv)
	if keep == nil {
		return strategies
	}
	var out []StrategyInfo
	for _, s := range strategies {
		if keep[s.ID] {
			out = append(out, s)
		}
	}
	return out
}
