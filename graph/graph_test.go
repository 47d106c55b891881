package graph_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/cbls/graph"
)

func ctr(id int) graph.FactorID { return graph.FactorID{Kind: graph.Constraint, ID: id} }
func obj(id int) graph.FactorID { return graph.FactorID{Kind: graph.Objective, ID: id} }

type GraphSuite struct {
	suite.Suite
	g *graph.Graph
}

func TestGraphSuite(t *testing.T) {
	suite.Run(t, new(GraphSuite))
}

func (s *GraphSuite) SetupTest() {
	s.g = graph.New()
}

func (s *GraphSuite) TestAddVariable() {
	require := require.New(s.T())
	require.NoError(s.g.AddVariable(0))
	require.True(s.g.HasVariable(0))
	require.ErrorIs(s.g.AddVariable(0), graph.ErrDuplicateVariable)
	require.ErrorIs(s.g.AddVariable(-1), graph.ErrNegativeID)
	require.False(s.g.HasVariable(1))
}

func (s *GraphSuite) TestAddFactor_AutoCreatesUndeclared() {
	require := require.New(s.T())
	require.NoError(s.g.AddVariable(0))
	require.NoError(s.g.AddFactor(ctr(0), []int{0, 2}))

	require.Equal([]int{0}, s.g.Variables())
	require.Equal([]int{2}, s.g.Undeclared())
	require.False(s.g.HasVariable(2), "referenced but never declared")

	// declaring later keeps incidences
	require.NoError(s.g.AddVariable(2))
	require.Empty(s.g.Undeclared())
	fs, err := s.g.Factors(2)
	require.NoError(err)
	require.Equal([]graph.FactorID{ctr(0)}, fs)
}

func (s *GraphSuite) TestAddFactor_Rejections() {
	require := require.New(s.T())
	require.ErrorIs(s.g.AddFactor(ctr(0), nil), graph.ErrEmptyScope)
	require.ErrorIs(s.g.AddFactor(ctr(-1), []int{0}), graph.ErrNegativeID)
	require.ErrorIs(s.g.AddFactor(ctr(0), []int{0, -3}), graph.ErrNegativeID)
	require.NoError(s.g.AddFactor(ctr(0), []int{0}))
	require.ErrorIs(s.g.AddFactor(ctr(0), []int{1}), graph.ErrDuplicateFactor)

	// same id, other kind: distinct key
	require.NoError(s.g.AddFactor(obj(0), []int{1}))
}

func (s *GraphSuite) TestRepeatedScopeLinksOnce() {
	require := require.New(s.T())
	require.NoError(s.g.AddFactor(ctr(0), []int{1, 1, 2}))
	st := s.g.Stats()
	require.Equal(2, st.Links)
	scope, err := s.g.Scope(ctr(0))
	require.NoError(err)
	require.Equal([]int{1, 1, 2}, scope, "scope order and repeats are kept")
}

func (s *GraphSuite) TestFactorsSortedAndDegree() {
	require := require.New(s.T())
	require.NoError(s.g.AddFactor(obj(1), []int{0}))
	require.NoError(s.g.AddFactor(ctr(5), []int{0, 1}))
	require.NoError(s.g.AddFactor(ctr(2), []int{0}))
	require.NoError(s.g.AddFactor(obj(0), []int{0, 1}))

	fs, err := s.g.Factors(0)
	require.NoError(err)
	require.Equal([]graph.FactorID{ctr(2), ctr(5), obj(0), obj(1)}, fs)
	require.Equal("constraint#2", fs[0].String())
	require.Equal("objective#1", fs[3].String())

	c, o, err := s.g.Degree(0)
	require.NoError(err)
	require.Equal(2, c)
	require.Equal(2, o)

	_, _, err = s.g.Degree(9)
	require.ErrorIs(err, graph.ErrVariableNotFound)
	_, err = s.g.Factors(9)
	require.ErrorIs(err, graph.ErrVariableNotFound)
}

func (s *GraphSuite) TestNeighbors() {
	require := require.New(s.T())
	require.NoError(s.g.AddFactor(ctr(0), []int{3, 1}))
	require.NoError(s.g.AddFactor(ctr(1), []int{1, 0, 3}))
	require.NoError(s.g.AddFactor(ctr(2), []int{4}))

	nb, err := s.g.Neighbors(1)
	require.NoError(err)
	require.Equal([]int{0, 3}, nb)

	nb, err = s.g.Neighbors(4)
	require.NoError(err)
	require.Empty(nb)

	_, err = s.g.Neighbors(7)
	require.ErrorIs(err, graph.ErrVariableNotFound)
}

func (s *GraphSuite) TestComponents() {
	require := require.New(s.T())
	for id := 0; id < 6; id++ {
		require.NoError(s.g.AddVariable(id))
	}
	require.NoError(s.g.AddFactor(ctr(0), []int{4, 2}))
	require.NoError(s.g.AddFactor(obj(0), []int{2, 0}))
	require.NoError(s.g.AddFactor(ctr(1), []int{3, 5, 9}))

	// 9 is undeclared: it neither joins nor forms a component
	require.Equal([][]int{{0, 2, 4}, {1}, {3, 5}}, s.g.Components())
	require.Empty(graph.New().Components())
}

func (s *GraphSuite) TestScopeIsCopy() {
	require := require.New(s.T())
	in := []int{0, 1}
	require.NoError(s.g.AddFactor(ctr(0), in))
	in[0] = 5
	got, err := s.g.Scope(ctr(0))
	require.NoError(err)
	require.Equal([]int{0, 1}, got)
	got[1] = 8
	again, _ := s.g.Scope(ctr(0))
	require.Equal([]int{0, 1}, again)

	_, err = s.g.Scope(obj(0))
	require.ErrorIs(err, graph.ErrFactorNotFound)
}

func (s *GraphSuite) TestStats() {
	require := require.New(s.T())
	require.NoError(s.g.AddVariable(0))
	require.NoError(s.g.AddVariable(1))
	require.NoError(s.g.AddFactor(ctr(0), []int{0, 1}))
	require.NoError(s.g.AddFactor(obj(0), []int{0, 1, 2}))
	require.Equal(graph.Stats{Variables: 2, Undeclared: 1, Constraints: 1, Objectives: 1, Links: 5}, s.g.Stats())
}

func (s *GraphSuite) TestCloneIsIndependent() {
	require := require.New(s.T())
	require.NoError(s.g.AddVariable(0))
	require.NoError(s.g.AddFactor(ctr(0), []int{0, 1}))

	c := s.g.Clone()
	require.Equal(s.g.Stats(), c.Stats())

	require.NoError(c.AddFactor(ctr(1), []int{0}))
	require.NoError(c.AddVariable(1))
	_, err := s.g.Scope(ctr(1))
	require.ErrorIs(err, graph.ErrFactorNotFound)
	require.False(s.g.HasVariable(1))
	fs, _ := s.g.Factors(0)
	require.Len(fs, 1)
}

func TestConcurrentAdds(t *testing.T) {
	g := graph.New()
	const workers = 8
	const per = 50

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < per; i++ {
				id := w*per + i
				_ = g.AddVariable(id)
				_ = g.AddFactor(graph.FactorID{Kind: graph.Constraint, ID: id}, []int{id, (id + 1) % (workers * per)})
				_, _ = g.Neighbors(id)
			}
		}(w)
	}
	wg.Wait()

	st := g.Stats()
	require.Equal(t, workers*per, st.Variables)
	require.Equal(t, 0, st.Undeclared)
	require.Equal(t, workers*per, st.Constraints)
	require.Equal(t, 2*workers*per, st.Links)
}
