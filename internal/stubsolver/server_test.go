package stubsolver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheDeepDelve/cubeviz"
	"github.com/TheDeepDelve/cubeviz/internal/solver"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func post(t *testing.T, router http.Handler, body any) (*httptest.ResponseRecorder, solver.Response) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/solve", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp solver.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestSolveKociembaUndoesScramble(t *testing.T) {
	res, err := Solve("R U R' F2", cubeviz.MethodKociemba)
	require.NoError(t, err)
	assert.Equal(t, "F2 R U' R'", res.Solution)

	l, err := cubeviz.ApplySequence(cubeviz.InitialState(), strings.Fields("R U R' F2 "+res.Solution))
	require.NoError(t, err)
	assert.True(t, l.IsSolved())
}

func TestSolveHumanHybridStartsWithTPerm(t *testing.T) {
	scramble := "F B' L2 D"
	res, err := Solve(scramble, cubeviz.MethodHumanHybrid)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.FullSolution, cubeviz.FormatMoves(cubeviz.TPerm)))

	l, err := cubeviz.ApplySequence(cubeviz.InitialState(), strings.Fields(scramble+" "+res.FullSolution))
	require.NoError(t, err)
	assert.True(t, l.IsSolved())
}

func TestSolveErrors(t *testing.T) {
	_, err := Solve("R X", cubeviz.MethodKociemba)
	assert.ErrorIs(t, err, cubeviz.ErrInvalidMove)

	_, err = Solve("R", "beginner")
	assert.ErrorIs(t, err, errInvalidMethod)
}

func TestHandleSolve(t *testing.T) {
	router := NewServer(nil).Router()

	w, resp := post(t, router, solver.Request{ScrambleMoves: "R", Method: "kociemba"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "R'", resp.Moves())
	assert.NotEmpty(t, w.Header().Get(solver.RequestIDHeader))

	w, resp = post(t, router, solver.Request{ScrambleMoves: "R U"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "U' R'", resp.Solution)
	assert.Equal(t, "Kociemba", resp.Metadata["method"])

	w = httptest.NewRecorder()
	body := `{"scramble_moves": "R", "method": "human_hybrid"}`
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(body)))
	var fields map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fields))
	assert.Equal(t, "Human-Hybrid", fields["method"], "metadata is written at the top level")
	assert.NotContains(t, fields, "metadata")
}

func TestHandleSolveRejects(t *testing.T) {
	router := NewServer(nil).Router()
	tests := []struct {
		name string
		req  solver.Request
		want string
	}{
		{"empty scramble", solver.Request{ScrambleMoves: "  ", Method: "kociemba"}, "No scramble provided"},
		{"bad token", solver.Request{ScrambleMoves: "R Q", Method: "kociemba"}, "invalid scramble"},
		{"bad method", solver.Request{ScrambleMoves: "R", Method: "beginner"}, "Invalid method specified"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := post(t, router, tt.req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, resp.Error)
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	router := NewServer(nil).Router()
	post(t, router, solver.Request{ScrambleMoves: "U", Method: "kociemba"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cubeviz_stub_solver_requests_total")
}

func TestClientAgainstStub(t *testing.T) {
	srv := httptest.NewServer(NewServer(nil).Router())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	c := solver.NewClient(srv.URL)
	sol, err := c.Solve(ctx, "L D2", cubeviz.MethodKociemba)
	require.NoError(t, err)
	assert.Equal(t, []string{"D2", "L'"}, sol.Moves)

	_, err = c.Solve(ctx, "L Z", cubeviz.MethodKociemba)
	assert.ErrorIs(t, err, cubeviz.ErrSolverReported)
}
