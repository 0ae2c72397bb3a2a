// internal/translate/heuristic.go
package translate

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule maps trigger phrases found in the question to a Shodan filter fragment.
// Rules live in a slice, not a map: matches must come out in table order so
// the same question always produces the same query.
type Rule struct {
	Triggers []string
	Fragment string
}

// DefaultRules is the built-in translation table, applied in order: products,
// services (mapped to their usual ports), device phrases, then countries.
// Country names carry both Spanish and English spellings, with and without
// accents, because the original user base writes questions in both.
var DefaultRules = []Rule{
	// Products
	{Triggers: []string{"cisco"}, Fragment: `product:"cisco"`},
	{Triggers: []string{"apache"}, Fragment: `product:"apache"`},
	{Triggers: []string{"nginx"}, Fragment: `product:"nginx"`},
	{Triggers: []string{"mikrotik"}, Fragment: `product:"mikrotik"`},
	{Triggers: []string{"iis"}, Fragment: `product:"iis"`},
	{Triggers: []string{"tomcat"}, Fragment: `product:"tomcat"`},
	{Triggers: []string{"mongodb", "mongo db"}, Fragment: `product:"mongodb"`},
	{Triggers: []string{"elasticsearch", "elastic search"}, Fragment: `product:"elastic"`},

	// Services by port
	{Triggers: []string{"rdp", "escritorio remoto", "remote desktop"}, Fragment: "port:3389"},
	{Triggers: []string{"ssh"}, Fragment: "port:22"},
	{Triggers: []string{"ftp"}, Fragment: "port:21"},
	{Triggers: []string{"telnet"}, Fragment: "port:23"},
	{Triggers: []string{"vnc"}, Fragment: "port:5900"},
	{Triggers: []string{"smb", "samba"}, Fragment: "port:445"},
	{Triggers: []string{"mysql"}, Fragment: "port:3306"},
	{Triggers: []string{"postgres", "postgresql"}, Fragment: "port:5432"},
	{Triggers: []string{"redis"}, Fragment: "port:6379"},

	// Device phrases mapped to plain search terms
	{Triggers: []string{"camara", "cámara", "camaras", "cámaras", "webcam", "camera", "cameras"}, Fragment: "webcam"},
	{Triggers: []string{"impresora", "impresoras", "printer", "printers"}, Fragment: "printer"},
	{Triggers: []string{"router", "routers"}, Fragment: "router"},

	// Countries
	{Triggers: []string{"chile"}, Fragment: `country:"CL"`},
	{Triggers: []string{"argentina"}, Fragment: `country:"AR"`},
	{Triggers: []string{"mexico", "méxico"}, Fragment: `country:"MX"`},
	{Triggers: []string{"españa", "espana", "spain"}, Fragment: `country:"ES"`},
	{Triggers: []string{"peru", "perú"}, Fragment: `country:"PE"`},
	{Triggers: []string{"colombia"}, Fragment: `country:"CO"`},
	{Triggers: []string{"brasil", "brazil"}, Fragment: `country:"BR"`},
	{Triggers: []string{"uruguay"}, Fragment: `country:"UY"`},
	{Triggers: []string{"ecuador"}, Fragment: `country:"EC"`},
	{Triggers: []string{"venezuela"}, Fragment: `country:"VE"`},
	{Triggers: []string{"bolivia"}, Fragment: `country:"BO"`},
	{Triggers: []string{"paraguay"}, Fragment: `country:"PY"`},
	{Triggers: []string{"estados unidos", "united states", "usa"}, Fragment: `country:"US"`},
	{Triggers: []string{"alemania", "germany"}, Fragment: `country:"DE"`},
	{Triggers: []string{"francia", "france"}, Fragment: `country:"FR"`},
	{Triggers: []string{"italia", "italy"}, Fragment: `country:"IT"`},
	{Triggers: []string{"reino unido", "united kingdom"}, Fragment: `country:"GB"`},
	{Triggers: []string{"china"}, Fragment: `country:"CN"`},
	{Triggers: []string{"japon", "japón", "japan"}, Fragment: `country:"JP"`},
	{Triggers: []string{"rusia", "russia"}, Fragment: `country:"RU"`},
	{Triggers: []string{"india"}, Fragment: `country:"IN"`},
	{Triggers: []string{"canada", "canadá"}, Fragment: `country:"CA"`},
}

// portMention picks up an explicit port number ("puerto 80 abierto",
// "on port 8080"). Applied after the rule table so the fragment lands last.
var portMention = regexp.MustCompile(`(?:puerto|port)\s+(\d{1,5})`)

// TranslateHeuristic converts a natural-language question into a Shodan query
// without any external call. Every rule whose trigger appears (substring match
// on the lowercased question) contributes its fragment once, in table order;
// fragments are joined with spaces, which Shodan treats as AND. When nothing
// matches, the question itself becomes a free-text query. It never fails.
func TranslateHeuristic(question string) string {
	q := strings.ToLower(question)
	var fragments []string

	for _, rule := range DefaultRules {
		for _, trigger := range rule.Triggers {
			if strings.Contains(q, trigger) {
				fragments = append(fragments, rule.Fragment)
				break
			}
		}
	}

	if m := portMention.FindStringSubmatch(q); m != nil {
		fragments = append(fragments, fmt.Sprintf("port:%s", m[1]))
	}

	if len(fragments) == 0 {
		// Low-precision free-text fallback, whitespace-normalized.
		return strings.Join(strings.Fields(question), " ")
	}
	return strings.Join(fragments, " ")
}
