package stacktrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalPaths(t *testing.T) {
	t.Parallel()

	stack := []byte(`goroutine 7 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/worknest/worknest-api/internal/pkg/router.middlewareRecoverer.func1.1()
	/app/internal/pkg/router/middleware_recover.go:31 +0x85
panic({0x10, 0x20})
	/usr/local/go/src/runtime/panic.go:791 +0x132
github.com/worknest/worknest-api/internal/project/usecase.(*Usecase).Create(...)
	/app/internal/project/usecase/project_create.go:40
`)

	assert.Equal(t, []string{
		"internal/pkg/router/middleware_recover.go:31",
		"internal/project/usecase/project_create.go:40",
	}, InternalPaths(stack))

	assert.Empty(t, InternalPaths(nil))
}
