package fetchz

import (
	"context"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestFetchIsReusable(t *testing.T) {
	src := intSource()

	f := Traverse([]int{1, 2, 3}, func(id int) Fetch[int] {
		return Request[int, int](src, id)
	})

	v1, err := Run(context.Background(), f)
	assert.NoError(t, err)
	v2, err := Run(context.Background(), f)
	assert.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, v1)
	assert.Equal(t, v1, v2)
}

func TestTraverseEmpty(t *testing.T) {
	src := intSource()

	v, env, err := RunEnv(context.Background(), Traverse(nil, func(id int) Fetch[int] {
		return Request[int, int](src, id)
	}))
	assert.NoError(t, err)
	assert.Equal(t, 0, len(v))
	assert.Equal(t, 0, len(env.Rounds))
}

func TestMapComposes(t *testing.T) {
	src := intSource()

	f := Map(Map(Request[int, int](src, 2), func(v int) int {
		return v * 10
	}), func(v int) int {
		return v + 1
	})

	v, env, err := RunEnv(context.Background(), f)
	assert.NoError(t, err)
	assert.Equal(t, 21, v)
	assert.Equal(t, 1, len(env.Rounds), "map must not introduce rounds")
}

func TestProductPreservesSides(t *testing.T) {
	src := intSource()

	f := Product(Pure("left"), Request[int, int](src, 9))

	v, err := Run(context.Background(), f)
	assert.NoError(t, err)
	assert.Equal(t, "left", v.First)
	assert.Equal(t, 9, v.Second)
}

func TestGetManyFromGet(t *testing.T) {
	get := func(ctx context.Context, id int) (string, bool, error) {
		if id == 2 {
			return "", false, nil
		}
		return "v", true, nil
	}

	out, err := GetManyFromGet(context.Background(), []int{1, 2, 3}, get)
	assert.NoError(t, err)
	assert.Equal(t, map[int]string{1: "v", 3: "v"}, out)
}
