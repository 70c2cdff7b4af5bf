// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package i18n

// DefaultCatalog ships the English strings.
var DefaultCatalog = Catalog{
	"en": {
		ResourcePrefix + "/v1::namespaces":                                   "Namespaces",
		ResourcePrefix + "/v1::nodes":                                        "Nodes",
		ResourcePrefix + "/v1::events":                                       "Events",
		ResourcePrefix + "/v1::pods":                                         "Pods",
		ResourcePrefix + "apps/v1::deployments":                              "Deployments",
		ResourcePrefix + "apps/v1::statefulsets":                             "Stateful Sets",
		ResourcePrefix + "apps/v1::daemonsets":                               "Daemon Sets",
		ResourcePrefix + "apps/v1::replicasets":                              "Replica Sets",
		ResourcePrefix + "batch/v1::jobs":                                    "Jobs",
		ResourcePrefix + "batch/v1::cronjobs":                                "Cron Jobs",
		ResourcePrefix + "/v1::configmaps":                                   "Config Maps",
		ResourcePrefix + "/v1::secrets":                                      "Secrets",
		ResourcePrefix + "autoscaling/v2::horizontalpodautoscalers":          "Horizontal Pod Autoscalers",
		ResourcePrefix + "policy/v1::poddisruptionbudgets":                   "Pod Disruption Budgets",
		ResourcePrefix + "/v1::services":                                     "Services",
		ResourcePrefix + "networking.k8s.io/v1::networkpolicies":             "Network Policies",
		ResourcePrefix + "networking.k8s.io/v1::ingresses":                   "Ingresses",
		ResourcePrefix + "networking.k8s.io/v1::ingressclasses":              "Ingress Classes",
		ResourcePrefix + "storage.k8s.io/v1::storageclasses":                 "Storage Classes",
		ResourcePrefix + "/v1::persistentvolumes":                            "Persistent Volumes",
		ResourcePrefix + "/v1::persistentvolumeclaims":                       "Persistent Volume Claims",
		ResourcePrefix + "rbac.authorization.k8s.io/v1::roles":               "Roles",
		ResourcePrefix + "rbac.authorization.k8s.io/v1::rolebindings":        "Role Bindings",
		ResourcePrefix + "rbac.authorization.k8s.io/v1::clusterroles":        "Cluster Roles",
		ResourcePrefix + "rbac.authorization.k8s.io/v1::clusterrolebindings": "Cluster Role Bindings",
		ResourcePrefix + "/v1::serviceaccounts":                              "Service Accounts",

		ColumnPrefix + "Name":            "Name",
		ColumnPrefix + "Age":             "Age",
		ColumnPrefix + "Nominated Node":  "Nominated Node",
		ColumnPrefix + "Readiness Gates": "Readiness Gates",

		CellPrefix + "CrashLoopBackOff": "Crash Loop",
		CellPrefix + "OOMKilled":        "Out of Memory",
		CellPrefix + "<none>":           "-",
	},
}
