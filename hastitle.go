// Package hastitle checks whether a page source declares a non-empty title.
// It recognises a templating title block ({% block title %}...{% endblock %})
// and an HTML <title> inside the first <head> region, and reduces the result
// to a yes/no verdict suitable for lint steps.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., marker/, sqlite/, goquery/).
package hastitle
