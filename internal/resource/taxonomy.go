// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package resource

import "strings"

// Well known resource keys.
var (
	Namespaces               = NewKey("", "v1", "namespaces")
	Nodes                    = NewKey("", "v1", "nodes")
	Events                   = NewKey("", "v1", "events")
	Pods                     = NewKey("", "v1", "pods")
	Deployments              = NewKey("apps", "v1", "deployments")
	StatefulSets             = NewKey("apps", "v1", "statefulsets")
	DaemonSets               = NewKey("apps", "v1", "daemonsets")
	ReplicaSets              = NewKey("apps", "v1", "replicasets")
	Jobs                     = NewKey("batch", "v1", "jobs")
	CronJobs                 = NewKey("batch", "v1", "cronjobs")
	ConfigMaps               = NewKey("", "v1", "configmaps")
	Secrets                  = NewKey("", "v1", "secrets")
	HorizontalPodAutoscalers = NewKey("autoscaling", "v2", "horizontalpodautoscalers")
	PodDisruptionBudgets     = NewKey("policy", "v1", "poddisruptionbudgets")
	Services                 = NewKey("", "v1", "services")
	NetworkPolicies          = NewKey("networking.k8s.io", "v1", "networkpolicies")
	Ingresses                = NewKey("networking.k8s.io", "v1", "ingresses")
	IngressClasses           = NewKey("networking.k8s.io", "v1", "ingressclasses")
	StorageClasses           = NewKey("storage.k8s.io", "v1", "storageclasses")
	PersistentVolumes        = NewKey("", "v1", "persistentvolumes")
	PersistentVolumeClaims   = NewKey("", "v1", "persistentvolumeclaims")
	Roles                    = NewKey("rbac.authorization.k8s.io", "v1", "roles")
	RoleBindings             = NewKey("rbac.authorization.k8s.io", "v1", "rolebindings")
	ClusterRoles             = NewKey("rbac.authorization.k8s.io", "v1", "clusterroles")
	ClusterRoleBindings      = NewKey("rbac.authorization.k8s.io", "v1", "clusterrolebindings")
	ServiceAccounts          = NewKey("", "v1", "serviceaccounts")
)

// Category groups resource keys under a sidebar heading.
type Category struct {
	Name string
	Keys []Key
}

// Taxonomy is an ordered list of categories.
type Taxonomy []Category

// DefaultTaxonomy is the sidebar structure shown by the UI.
var DefaultTaxonomy = Taxonomy{
	{Name: "Cluster", Keys: []Key{Namespaces, Nodes, Events}},
	{Name: "Workload", Keys: []Key{Pods, Deployments, StatefulSets, DaemonSets, ReplicaSets, Jobs, CronJobs}},
	{Name: "Config", Keys: []Key{ConfigMaps, Secrets, HorizontalPodAutoscalers, PodDisruptionBudgets}},
	{Name: "Network", Keys: []Key{Services, NetworkPolicies, Ingresses, IngressClasses}},
	{Name: "Storage", Keys: []Key{StorageClasses, PersistentVolumes, PersistentVolumeClaims}},
	{Name: "Access Control", Keys: []Key{Roles, RoleBindings, ClusterRoles, ClusterRoleBindings, ServiceAccounts}},
}

// Keys returns all keys in taxonomy order.
func (t Taxonomy) Keys() []Key {
	var kk []Key
	for _, c := range t {
		kk = append(kk, c.Keys...)
	}
	return kk
}

// Find returns the category holding the given key.
func (t Taxonomy) Find(k Key) (string, bool) {
	for _, c := range t {
		for _, ck := range c.Keys {
			if ck == k {
				return c.Name, true
			}
		}
	}
	return "", false
}

// DefaultAliases maps short names to resource keys, k9s style.
var DefaultAliases = map[string]Key{
	"ns":     Namespaces,
	"no":     Nodes,
	"ev":     Events,
	"po":     Pods,
	"deploy": Deployments,
	"sts":    StatefulSets,
	"ds":     DaemonSets,
	"rs":     ReplicaSets,
	"cj":     CronJobs,
	"cm":     ConfigMaps,
	"hpa":    HorizontalPodAutoscalers,
	"pdb":    PodDisruptionBudgets,
	"svc":    Services,
	"netpol": NetworkPolicies,
	"ing":    Ingresses,
	"sc":     StorageClasses,
	"pv":     PersistentVolumes,
	"pvc":    PersistentVolumeClaims,
	"sa":     ServiceAccounts,
}

// Lookup resolves a user supplied name to a key. It accepts aliases,
// plain resource names ("pods") and full key strings ("apps/v1::deployments").
func (t Taxonomy) Lookup(name string) (Key, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := DefaultAliases[name]; ok {
		return k, true
	}
	if k, err := ParseKey(name); err == nil {
		return k, true
	}
	for _, k := range t.Keys() {
		if k.Resource == name || strings.TrimSuffix(k.Resource, "s") == name {
			return k, true
		}
	}
	return Key{}, false
}
