package webapp

import (
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/ogefest/fbrowser/app"
	"github.com/ogefest/fbrowser/models"
)

// WebApp exposes one listing model over HTTP. The model is not safe for
// concurrent use, so every handler holds mu while it talks to it.
type WebApp struct {
	Router    http.Handler
	AppConfig *models.AppConfig
	Model     *app.Model
	History   *app.History // optional

	mu sync.Mutex
}

// NewWebApp wraps the model of rt and builds the router.
func NewWebApp(rt *app.Runtime) *WebApp {
	webapp := &WebApp{
		AppConfig: rt.Config,
		Model:     rt.Model,
		History:   rt.History,
	}
	webapp.Router = webapp.GetRouter()
	return webapp
}

// GetListenAddr returns host:port from the config. The host defaults to the
// loopback interface; the API can delete files and has no authentication.
func (webapp *WebApp) GetListenAddr() string {
	host, port := "127.0.0.1", 8080
	if webapp.AppConfig != nil {
		if webapp.AppConfig.Server.Host != "" {
			host = webapp.AppConfig.Server.Host
		}
		if webapp.AppConfig.Server.Port > 0 {
			port = webapp.AppConfig.Server.Port
		}
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

func (webapp *WebApp) GetRouter() http.Handler {
	return router(webapp)
}

// locked runs fn while holding the model lock.
func (webapp *WebApp) locked(fn func(m *app.Model)) {
	webapp.mu.Lock()
	defer webapp.mu.Unlock()
	fn(webapp.Model)
}
