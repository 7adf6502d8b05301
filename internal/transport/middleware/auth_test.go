package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/adminboard/internal"
	"github.com/adminboard/internal/auth"
	"github.com/adminboard/internal/permissions"
	"github.com/adminboard/internal/session"
	"github.com/adminboard/internal/transport/middleware"
	"github.com/adminboard/internal/user"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Middleware Suite")
}

type fakeResolver struct {
	views map[string]*session.View
}

func (f *fakeResolver) Login(_ context.Context, _ auth.LoginDTO, _ map[string]any) (*user.User, *session.Created, error) {
	return nil, nil, internal.ErrUserNotFound
}

func (f *fakeResolver) Register(_ context.Context, _ auth.RegisterDTO, _ map[string]any) (*user.User, *session.Created, error) {
	return nil, nil, internal.ErrEmailTaken
}

func (f *fakeResolver) Refresh(_ context.Context, id string) (*session.View, bool, error) {
	return f.ResolveSession(context.Background(), id)
}

func (f *fakeResolver) Logout(_ context.Context, _, _ string) error { return nil }

func (f *fakeResolver) ResolveSession(_ context.Context, id string) (*session.View, bool, error) {
	v, ok := f.views[id]
	if !ok {
		return nil, false, internal.ErrSessionNotFound
	}
	return v, false, nil
}

func envelopeOf(rec *httptest.ResponseRecorder) internal.Envelope {
	GinkgoHelper()
	var env internal.Envelope
	Expect(json.NewDecoder(rec.Body).Decode(&env)).To(Succeed())
	return env
}

func withCookie(req *http.Request, value string) *http.Request {
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: value})
	return req
}

func viewFor(u *user.User) *session.View {
	return &session.View{
		Data:      session.Data{SuperAdmin: u.SuperAdmin},
		UserName:  u.FullName(),
		User:      u,
		UpdatedAt: time.Now(),
	}
}

var _ = Describe("LoginGuard", func() {
	var (
		resolver *fakeResolver
		guard    *middleware.LoginGuard

		seen     *user.User
		terminal http.Handler
	)

	BeforeEach(func() {
		resolver = &fakeResolver{views: map[string]*session.View{}}
		guard = middleware.NewLoginGuard(resolver, nil)

		seen = nil
		terminal = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = auth.UserFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})
	})

	Describe("InjectUser", func() {
		It("passes through without a cookie", func() {
			rec := httptest.NewRecorder()
			guard.InjectUser(terminal).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(seen).To(BeNil())
		})

		It("attaches the resolved user", func() {
			resolver.views["sess_ok"] = viewFor(&user.User{ID: "user_1", FirstName: "Ada"})

			rec := httptest.NewRecorder()
			req := withCookie(httptest.NewRequest(http.MethodGet, "/", nil), "sess_ok")
			guard.InjectUser(terminal).ServeHTTP(rec, req)

			Expect(seen).NotTo(BeNil())
			Expect(seen.ID).To(Equal("user_1"))
		})

		It("clears a dead cookie and still passes through", func() {
			rec := httptest.NewRecorder()
			req := withCookie(httptest.NewRequest(http.MethodGet, "/", nil), "sess_dead")
			guard.InjectUser(terminal).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(seen).To(BeNil())

			cookies := rec.Result().Cookies()
			Expect(cookies).To(HaveLen(1))
			Expect(cookies[0].MaxAge).To(Equal(-1))
		})
	})

	Describe("RequireLogin", func() {
		It("fails closed without a cookie", func() {
			rec := httptest.NewRecorder()
			guard.RequireLogin(terminal).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			env := envelopeOf(rec)
			Expect(env.Success).To(BeFalse())
			Expect(env.Message).To(Equal("No session found"))
			Expect(seen).To(BeNil())
		})

		It("fails closed when resolution fails", func() {
			rec := httptest.NewRecorder()
			req := withCookie(httptest.NewRequest(http.MethodGet, "/", nil), "sess_dead")
			guard.RequireLogin(terminal).ServeHTTP(rec, req)

			env := envelopeOf(rec)
			Expect(env.Success).To(BeFalse())
			Expect(env.Message).To(Equal("Session not found"))
		})

		It("resolves on its own when enrichment did not run", func() {
			resolver.views["sess_ok"] = viewFor(&user.User{ID: "user_1"})

			rec := httptest.NewRecorder()
			req := withCookie(httptest.NewRequest(http.MethodGet, "/", nil), "sess_ok")
			guard.RequireLogin(terminal).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(seen).NotTo(BeNil())
		})

		It("short-circuits when the context already carries a user", func() {
			rec := httptest.NewRecorder()
			req := withCookie(httptest.NewRequest(http.MethodGet, "/", nil), "sess_whatever")
			req = req.WithContext(auth.ContextWithUser(req.Context(), &user.User{ID: "user_ctx"}))

			guard.RequireLogin(terminal).ServeHTTP(rec, req)

			Expect(seen).NotTo(BeNil())
			Expect(seen.ID).To(Equal("user_ctx"))
		})
	})

	Describe("RequireSuperAdmin", func() {
		It("denies a regular user with 403", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(auth.ContextWithUser(req.Context(), &user.User{ID: "user_1"}))

			guard.RequireSuperAdmin(terminal).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusForbidden))
			env := envelopeOf(rec)
			Expect(env.Success).To(BeFalse())
			Expect(env.Message).To(Equal("You are not permitted to access this resource."))
		})

		It("denies an anonymous request with 403", func() {
			rec := httptest.NewRecorder()
			guard.RequireSuperAdmin(terminal).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})

		It("lets a super-admin through", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(auth.ContextWithUser(req.Context(), &user.User{ID: "user_root", SuperAdmin: true}))

			guard.RequireSuperAdmin(terminal).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
		})
	})
})

var _ = Describe("PermissionMiddleware", func() {
	var (
		perms    *middleware.PermissionMiddleware
		terminal http.Handler
		held     []permissions.Permission
	)

	BeforeEach(func() {
		perms = middleware.NewPermissionMiddleware(nil)
		held = nil
		terminal = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			held = permissions.FromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})
	})

	Describe("InjectPermissions", func() {
		It("attaches the default user set for authenticated callers", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(auth.ContextWithUser(req.Context(), &user.User{ID: "user_1"}))

			perms.InjectPermissions(terminal).ServeHTTP(rec, req)

			Expect(held).To(Equal(permissions.DefaultPermissions["user"]))
		})

		It("leaves anonymous requests without a permission set", func() {
			rec := httptest.NewRecorder()
			perms.InjectPermissions(terminal).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			Expect(held).To(BeEmpty())
		})
	})

	Describe("Require", func() {
		requireRead := middleware.RequireConfig{
			RequiredPermissions: []permissions.Permission{permissions.ReadOwnUsers},
		}

		It("denies a caller missing the required permission with 403", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(auth.ContextWithUser(req.Context(), &user.User{ID: "user_1"}))

			perms.Require(requireRead)(terminal).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})

		It("allows a caller holding the required permission", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			ctx := auth.ContextWithUser(req.Context(), &user.User{ID: "user_1"})
			ctx = permissions.ContextWith(ctx, permissions.UserPermissions)

			perms.Require(requireRead)(terminal).ServeHTTP(rec, req.WithContext(ctx))

			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("lets a super-admin bypass the required set", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			ctx := auth.ContextWithUser(req.Context(), &user.User{ID: "user_root", SuperAdmin: true})

			perms.Require(requireRead)(terminal).ServeHTTP(rec, req.WithContext(ctx))

			Expect(rec.Code).To(Equal(http.StatusOK))
		})
	})
})
