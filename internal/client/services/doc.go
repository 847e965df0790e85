// Package services contains the application services behind each client
// view: the public catalog, the student's registrations and profile, the
// club manager and admin dashboards, and the notification inbox.
//
// Services never cache collection entities beyond what a view needs: after a
// mutation the caller reloads, and only the gateway's returned objects are
// applied. The one local merge is the current user's own identity, done
// through the session store once the backend has confirmed the change.
package services
