package registry_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/fmtpin/internal/adapters/telemetry"
	"go.trai.ch/fmtpin/internal/core/domain"
	"go.trai.ch/fmtpin/internal/core/ports/mocks"
	"go.trai.ch/fmtpin/internal/engine/registry"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	acquirer *mocks.MockVersionAcquirer
	loader   *mocks.MockEngineLoader
	registry *registry.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		acquirer: mocks.NewMockVersionAcquirer(ctrl),
		loader:   mocks.NewMockEngineLoader(ctrl),
	}
	f.registry = registry.New(f.acquirer, f.loader, telemetry.NewNoOpTracer())
	return f
}

func artifactsFor(version string) domain.Artifacts {
	return domain.Artifacts{Version: version, Locations: []string{"/cache/" + version + "/engine.wasm"}}
}

func TestRegistry_ResolveCachesByVersion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eng := mocks.NewMockEngine(gomock.NewController(t))

	f.acquirer.EXPECT().Download(gomock.Any(), "1.2.0", io.Discard).Return(artifactsFor("1.2.0"), nil).Times(1)
	f.loader.EXPECT().Load(gomock.Any(), artifactsFor("1.2.0")).Return(eng, nil).Times(1)

	first, err := f.registry.Resolve(ctx, "1.2.0", io.Discard)
	require.NoError(t, err)
	second, err := f.registry.Resolve(ctx, "1.2.0", io.Discard)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, f.registry.Len())
	assert.Equal(t, []string{"1.2.0"}, f.registry.Versions())
}

func TestRegistry_DistinctVersionsDistinctEngines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	engA, engB := mocks.NewMockEngine(ctrl), mocks.NewMockEngine(ctrl)

	f.acquirer.EXPECT().Download(gomock.Any(), "1.0.0", gomock.Any()).Return(artifactsFor("1.0.0"), nil)
	f.acquirer.EXPECT().Download(gomock.Any(), "2.0.0", gomock.Any()).Return(artifactsFor("2.0.0"), nil)
	f.loader.EXPECT().Load(gomock.Any(), artifactsFor("1.0.0")).Return(engA, nil)
	f.loader.EXPECT().Load(gomock.Any(), artifactsFor("2.0.0")).Return(engB, nil)

	a, err := f.registry.Resolve(ctx, "1.0.0", io.Discard)
	require.NoError(t, err)
	b, err := f.registry.Resolve(ctx, "2.0.0", io.Discard)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, []string{"1.0.0", "2.0.0"}, f.registry.Versions())
}

func TestRegistry_ConcurrentFirstRequestsBuildOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eng := mocks.NewMockEngine(gomock.NewController(t))

	release := make(chan struct{})
	f.acquirer.EXPECT().Download(gomock.Any(), "1.2.0", gomock.Any()).
		DoAndReturn(func(context.Context, string, io.Writer) (domain.Artifacts, error) {
			<-release
			return artifactsFor("1.2.0"), nil
		}).Times(1)
	f.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(eng, nil).Times(1)

	const callers = 16
	results := make([]any, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := f.registry.Resolve(ctx, "1.2.0", io.Discard)
			assert.NoError(t, err)
			results[i] = got
		}()
	}
	close(release)
	wg.Wait()

	for _, got := range results {
		assert.Same(t, eng, got)
	}
	assert.Equal(t, 1, f.registry.Len())
}

func TestRegistry_DownloadFailure(t *testing.T) {
	f := newFixture(t)
	cause := errors.New("release index unreachable")

	f.acquirer.EXPECT().Download(gomock.Any(), "9.9.9", gomock.Any()).Return(domain.Artifacts{}, cause)

	_, err := f.registry.Resolve(context.Background(), "9.9.9", io.Discard)
	require.ErrorIs(t, err, domain.ErrCannotDownload)
	require.ErrorIs(t, err, cause)

	var fe *domain.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "9.9.9", fe.Version)
	assert.Equal(t, 0, f.registry.Len())
}

func TestRegistry_LoadFailureStoresNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cause := errors.New("no _start export")
	eng := mocks.NewMockEngine(gomock.NewController(t))

	gomock.InOrder(
		f.acquirer.EXPECT().Download(gomock.Any(), "1.2.0", gomock.Any()).Return(artifactsFor("1.2.0"), nil),
		f.loader.EXPECT().Load(gomock.Any(), artifactsFor("1.2.0")).Return(nil, cause),
		f.acquirer.EXPECT().Download(gomock.Any(), "1.2.0", gomock.Any()).Return(artifactsFor("1.2.0"), nil),
		f.loader.EXPECT().Load(gomock.Any(), artifactsFor("1.2.0")).Return(eng, nil),
	)

	_, err := f.registry.Resolve(ctx, "1.2.0", io.Discard)
	require.ErrorIs(t, err, domain.ErrCorruptedArtifacts)
	require.ErrorIs(t, err, cause)

	var fe *domain.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "1.2.0", fe.Version)
	assert.Equal(t, []string{"/cache/1.2.0/engine.wasm"}, fe.Locations)
	assert.Equal(t, 0, f.registry.Len())

	got, err := f.registry.Resolve(ctx, "1.2.0", io.Discard)
	require.NoError(t, err)
	assert.Same(t, eng, got)
}

func TestRegistry_Clear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	first, second := mocks.NewMockEngine(ctrl), mocks.NewMockEngine(ctrl)

	gomock.InOrder(
		f.acquirer.EXPECT().Download(gomock.Any(), "1.2.0", gomock.Any()).Return(artifactsFor("1.2.0"), nil),
		f.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(first, nil),
		first.EXPECT().Close(gomock.Any()).Return(nil),
		f.acquirer.EXPECT().Download(gomock.Any(), "1.2.0", gomock.Any()).Return(artifactsFor("1.2.0"), nil),
		f.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(second, nil),
	)

	got, err := f.registry.Resolve(ctx, "1.2.0", io.Discard)
	require.NoError(t, err)
	assert.Same(t, first, got)

	require.NoError(t, f.registry.Clear(ctx))
	assert.Equal(t, 0, f.registry.Len())

	got, err = f.registry.Resolve(ctx, "1.2.0", io.Discard)
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestRegistry_ClearJoinsCloseErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	engA, engB := mocks.NewMockEngine(ctrl), mocks.NewMockEngine(ctrl)
	errA, errB := errors.New("close a"), errors.New("close b")

	f.acquirer.EXPECT().Download(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, version string, _ io.Writer) (domain.Artifacts, error) {
			return artifactsFor(version), nil
		}).Times(2)
	f.loader.EXPECT().Load(gomock.Any(), artifactsFor("1.0.0")).Return(engA, nil)
	f.loader.EXPECT().Load(gomock.Any(), artifactsFor("2.0.0")).Return(engB, nil)
	engA.EXPECT().Close(gomock.Any()).Return(errA)
	engB.EXPECT().Close(gomock.Any()).Return(errB)

	_, err := f.registry.Resolve(ctx, "1.0.0", io.Discard)
	require.NoError(t, err)
	_, err = f.registry.Resolve(ctx, "2.0.0", io.Discard)
	require.NoError(t, err)

	err = f.registry.Clear(ctx)
	require.ErrorIs(t, err, errA)
	require.ErrorIs(t, err, errB)
	assert.Equal(t, 0, f.registry.Len())
}

func TestRegistry_ResolveSpan(t *testing.T) {
	ctrl := gomock.NewController(t)
	acquirer := mocks.NewMockVersionAcquirer(ctrl)
	loader := mocks.NewMockEngineLoader(ctrl)
	eng := mocks.NewMockEngine(ctrl)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reg := registry.New(acquirer, loader, telemetry.NewOTelTracerFromProvider(tp, "test"))

	acquirer.EXPECT().Download(gomock.Any(), "1.2.0", gomock.Any()).Return(artifactsFor("1.2.0"), nil)
	loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(eng, nil)

	ctx := context.Background()
	_, err := reg.Resolve(ctx, "1.2.0", io.Discard)
	require.NoError(t, err)
	_, err = reg.Resolve(ctx, "1.2.0", io.Discard)
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	for i, wantCached := range []bool{false, true} {
		assert.Equal(t, "engine.resolve", spans[i].Name())
		assert.Contains(t, spans[i].Attributes(), attribute.String("fmtpin.version", "1.2.0"))
		assert.Contains(t, spans[i].Attributes(), attribute.Bool("fmtpin.cached", wantCached))
	}
}
