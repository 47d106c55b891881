package constraint_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/cbls/constraint"
)

type ConstructorSuite struct {
	suite.Suite
}

func TestConstructorSuite(t *testing.T) {
	suite.Run(t, new(ConstructorSuite))
}

func (s *ConstructorSuite) TestNew_Valid() {
	c, err := constraint.New(constraint.AllDifferent[int], []int{0, 1, 2}, []int{1, 1, 2})
	s.Require().NoError(err)
	s.Equal(constraint.RoleConstraint, c.Role())
	s.Equal([]int{0, 1, 2}, c.Scope())
	s.Equal(3, c.Arity())
	s.Equal("int", c.ValueType())
	s.Equal(1.0, c.Eval([]int{4, 4, 5}))
}

func (s *ConstructorSuite) TestNew_ScopeIsCopied() {
	scope := []int{0, 1}
	c, err := constraint.New(constraint.AllDifferent[int], scope, []int{0, 1})
	s.Require().NoError(err)

	scope[0] = 7
	got := c.Scope()
	s.Equal([]int{0, 1}, got)
	got[1] = 9
	s.Equal([]int{0, 1}, c.Scope())
}

func (s *ConstructorSuite) TestNew_Rejections() {
	cases := []struct {
		name   string
		fn     constraint.Func[int]
		scope  []int
		sample []int
		reason string
	}{
		{"nil", nil, []int{0}, []int{0}, "nil function"},
		{"empty scope", constraint.AllDifferent[int], nil, nil, "empty scope"},
		{"sample mismatch", constraint.AllDifferent[int], []int{0, 1}, []int{0}, "sample has 1 values"},
		{"wrong arity", constraint.DistDifferent[int], []int{0, 1, 2}, []int{0, 1, 2}, "panicked"},
		{"negative", func([]int) float64 { return -1 }, []int{3}, []int{0}, "negative violation"},
		{"nan", func([]int) float64 { return math.NaN() }, []int{3}, []int{0}, "NaN"},
		{"inf", func([]int) float64 { return math.Inf(1) }, []int{3}, []int{0}, "+Inf"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := constraint.New(tc.fn, tc.scope, tc.sample)
			s.Require().Error(err)
			s.ErrorIs(err, constraint.ErrInvalidConstraint)
			s.NotErrorIs(err, constraint.ErrInvalidObjective)

			var cerr *constraint.Error
			s.Require().True(errors.As(err, &cerr))
			s.Contains(cerr.Reason, tc.reason)
			s.Contains(err.Error(), "scope")
		})
	}
}

func (s *ConstructorSuite) TestNewObjective_AcceptsNegative() {
	o, err := constraint.NewObjective(func(x []float64) float64 { return -x[0] }, []int{0}, []float64{2.5})
	s.Require().NoError(err)
	s.Equal(constraint.RoleObjective, o.Role())
	s.Equal(-3.0, o.Eval([]float64{3}))
}

func (s *ConstructorSuite) TestNewObjective_Rejections() {
	_, err := constraint.NewObjective(func([]int) float64 { panic("boom") }, []int{0, 4}, []int{1, 2})
	s.Require().ErrorIs(err, constraint.ErrInvalidObjective)
	s.Contains(err.Error(), "[0 4]")
}

func TestLibrary(t *testing.T) {
	require.Equal(t, 0.0, constraint.AllDifferent([]int{1, 2, 3}))
	require.Equal(t, 3.0, constraint.AllDifferent([]int{5, 5, 5}))
	require.Equal(t, 2.0, constraint.AllDifferent([]int{1, 1, 2, 2}))

	long := make([]int, 40) // frequency-map path
	for i := range long {
		long[i] = i % 20
	}
	require.Equal(t, 20.0, constraint.AllDifferent(long))

	require.Equal(t, 0.0, constraint.AllEqual([]int{2, 2, 2}))
	require.Equal(t, 1.0, constraint.AllEqual([]int{2, 3, 2}))
	require.Equal(t, 2.0, constraint.AllEqual([]int{1, 2, 3}))

	eq0 := constraint.AllEqualParam(0)
	require.Equal(t, 0.0, eq0([]int{0}))
	require.Equal(t, 2.0, eq0([]int{0, 1, 3}))

	require.Equal(t, 1.0, constraint.DistDifferent([]int{0, 2, 3, 5}))
	require.Equal(t, 0.0, constraint.DistDifferent([]int{0, 1, 3, 5}))
	require.Equal(t, 1.0, constraint.DistDifferent([]uint{5, 3, 0, 2}))

	require.Equal(t, 0.0, constraint.Ordered([]int{1, 2, 2, 3}))
	require.Equal(t, 2.0, constraint.Ordered([]int{3, 2, 1}))

	require.Equal(t, 6.0, constraint.DistExtrema([]int{4, 0, 6, 1}))
	require.Equal(t, 0.0, constraint.DistExtrema([]float64{}))
}
